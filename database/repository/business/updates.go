// File: database/repository/business/updates.go
package businessRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateSet applies a single atomic $set so readers never observe a
// half-updated status/payoutsEnabled pair.
func (r *mongoBusinessRepo) UpdateSet(ctx context.Context, id string, updateDoc bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	filter := bson.M{"id": id}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update business with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("business with id %s not found", id)
	}
	return nil
}
