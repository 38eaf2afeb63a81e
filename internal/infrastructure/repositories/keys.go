package repositories

import (
	"strconv"
	"time"
)

// Keys are literal segment prefixes and identifier segments joined by
// ':'. The "owner/name" repository slug keeps its '/' inside a single
// segment. Identifier segments must not contain the delimiter; that is
// validated at the ingestion boundary, not here.

func repoKey(owner, name string) []byte {
	return []byte("repo:" + owner + "/" + name)
}

func repoListPrefix() []byte {
	return []byte("repo:")
}

func prKey(repoSlug string, number int) []byte {
	return []byte("pr:" + repoSlug + ":" + strconv.Itoa(number))
}

func prPrefix(repoSlug string) []byte {
	return []byte("pr:" + repoSlug + ":")
}

// baseChangeKey uses a nanosecond timestamp, the same scheme as the
// wallet history log, so two changes within one wall-clock second land on
// distinct keys.
func baseChangeKey(repoSlug string, at time.Time) []byte {
	return []byte("base:" + repoSlug + ":" + strconv.FormatInt(at.UnixNano(), 10))
}

func baseChangePrefix(repoSlug string) []byte {
	return []byte("base:" + repoSlug + ":")
}

func walletKey(platform, login string) []byte {
	return []byte("login:" + platform + ":" + login)
}

func historyKey(platform, login string, at time.Time) []byte {
	return []byte("history:" + platform + ":" + login + ":" + strconv.FormatInt(at.UnixNano(), 10))
}

func historyPrefix(platform, login string) []byte {
	return []byte("history:" + platform + ":" + login + ":")
}

func linkKey(address, platform, login string) []byte {
	return []byte("wallet:" + address + ":" + platform + ":" + login)
}

func linkPrefix(address string) []byte {
	return []byte("wallet:" + address + ":")
}

func linkPlatformPrefix(address, platform string) []byte {
	return []byte("wallet:" + address + ":" + platform + ":")
}

func projectKey(projectID string) []byte {
	return []byte("project:" + projectID)
}

func projectListPrefix() []byte {
	return []byte("project:")
}

func ownerKey(projectID, username string) []byte {
	return []byte("owner:" + projectID + ":" + username)
}

func ownerPrefix(projectID string) []byte {
	return []byte("owner:" + projectID + ":")
}

// projRepoKey and ownerProjKey are index rows with the lookup direction
// embedded in the prefix, so project→repositories and owner→projects are
// bounded scans instead of full-partition walks.
func projRepoKey(projectID, repoSlug string) []byte {
	return []byte("projrepo:" + projectID + ":" + repoSlug)
}

func projRepoPrefix(projectID string) []byte {
	return []byte("projrepo:" + projectID + ":")
}

func ownerProjKey(username, projectID string) []byte {
	return []byte("ownerproj:" + username + ":" + projectID)
}

func ownerProjPrefix(username string) []byte {
	return []byte("ownerproj:" + username + ":")
}
