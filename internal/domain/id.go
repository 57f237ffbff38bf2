package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseID checks that s is a well-formed ObjectID (24 hex characters) and
// converts it. It never fails loudly; malformed input yields false.
func ParseID(s string) (primitive.ObjectID, bool) {
	if !primitive.IsValidObjectID(s) {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
