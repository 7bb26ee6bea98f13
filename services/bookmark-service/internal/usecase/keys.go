package usecase

// Cache key builders. Keys are namespaced per user so invalidation on a
// mutation only touches the owning user's entries.
const keyPrefix = "markvault:"

func folderKey(userID, folderID string) string {
	return keyPrefix + "folder:" + userID + ":" + folderID
}

func folderCountKey(userID string) string {
	return keyPrefix + "folder:count:" + userID
}

func folderVisitsKey(folderID string) string {
	return keyPrefix + "folder:visits:" + folderID
}

func bookmarkKey(userID, folderID, bookmarkID string) string {
	return keyPrefix + "bookmark:" + userID + ":" + folderID + ":" + bookmarkID
}

func bookmarkCountKey(userID, folderID string) string {
	return keyPrefix + "bookmark:count:" + userID + ":" + folderID
}

func bookmarkVisitsKey(bookmarkID string) string {
	return keyPrefix + "bookmark:visits:" + bookmarkID
}
