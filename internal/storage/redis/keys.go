package redis

import (
	"fmt"

	"github.com/JMaramara/boardgame/internal/model"
)

// Key prefix for all catalog-related data
const keyPrefix = "bgcat"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// itemKey returns the Redis key for a CollectionItem
func itemKey(id model.ItemID) string {
	return fmt.Sprintf("%s:item:%s", keyPrefix, id)
}

// listIndexKey returns the Redis key for the LIST of item ids in one of a
// user's two lists, in insertion order
func listIndexKey(userID model.UserID, isWishlist bool) string {
	return fmt.Sprintf("%s:idx:list:%s:%t", keyPrefix, userID, isWishlist)
}
