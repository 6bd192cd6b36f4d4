package model

import "time"

// SlotLock is an advisory lock held across the conflict check and the
// booking insert. The unique _id makes a second concurrent acquisition
// fail with a duplicate key error; the expiry is a TTL backstop in case
// the holder dies before releasing.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
