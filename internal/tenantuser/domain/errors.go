package domain

import "raally_backend/platform/apperr"

// Localization catalog keys for membership mutation failures. The HTTP
// adapter ships the key to the client, which renders the translated message.
// Keys are stable API surface: changing one breaks client catalogs.
const (
	KeyValidation         = "errors.validation"
	KeyRevokingPlanUser   = "user.errors.revokingPlanUser"
	KeyDestroyingPlanUser = "user.errors.destroyingPlanUser"
	KeyRevokingOwnAdmin   = "user.errors.revokingOwnPermission"
	KeyDestroyingHimself  = "user.errors.destroyingHimself"
	KeyUserNotFound       = "user.errors.userNotFound"
	KeyMembershipNotFound = "user.errors.membershipNotFound"
	KeyStoreFailure       = "errors.database"
)

// ErrInvalidInput reports a missing or malformed required field. Raised
// before any transaction opens.
func ErrInvalidInput(message string) error {
	return apperr.Validation(message).WithKey(KeyValidation)
}

// ErrPlanOwnerRevocation reports an attempt to strip admin rights from the
// tenant's billing-responsible user on a live paid plan.
func ErrPlanOwnerRevocation() error {
	return apperr.BadRequest("cannot revoke admin access of the plan owner").WithKey(KeyRevokingPlanUser)
}

// ErrPlanOwnerRemoval reports an attempt to remove the tenant's
// billing-responsible user on a live paid plan.
func ErrPlanOwnerRemoval() error {
	return apperr.BadRequest("cannot remove the plan owner from the tenant").WithKey(KeyDestroyingPlanUser)
}

// ErrSelfAdminRevocation reports an actor trying to drop their own admin role.
func ErrSelfAdminRevocation() error {
	return apperr.BadRequest("cannot revoke your own admin role").WithKey(KeyRevokingOwnAdmin)
}

// ErrSelfRemoval reports an actor trying to remove themselves from the tenant.
func ErrSelfRemoval() error {
	return apperr.BadRequest("cannot remove yourself from the tenant").WithKey(KeyDestroyingHimself)
}

// ErrUserNotFound reports a removal target that does not resolve to a user.
func ErrUserNotFound() error {
	return apperr.NotFound("user not found").WithKey(KeyUserNotFound)
}

// ErrMembershipNotFound reports an edit target with no membership in the tenant.
func ErrMembershipNotFound() error {
	return apperr.NotFound("membership not found").WithKey(KeyMembershipNotFound)
}

// ErrStoreFailure wraps an unexpected transactional-store failure.
func ErrStoreFailure(err error) error {
	return apperr.Wrap(apperr.KindInternal, "store operation failed", err).WithKey(KeyStoreFailure)
}

// HasKey reports whether err is a domain error carrying the given catalog key.
func HasKey(err error, key string) bool {
	return apperr.GetKey(err) == key
}
