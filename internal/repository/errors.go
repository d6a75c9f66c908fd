package repository

import (
	"errors"

	"github.com/Dias221467/mindbloom/pkg/apperror"
	"go.mongodb.org/mongo-driver/mongo"
)

// mapError turns a driver error into a typed failure. what names the entity for
// messages, e.g. "challenge".
func mapError(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperror.NotFoundf("%s not found", what)
	case mongo.IsDuplicateKeyError(err):
		return &apperror.Error{Kind: apperror.Conflict, Msg: what + " already exists", Err: err}
	default:
		return apperror.Unavailable("failed to access "+what, err)
	}
}
