package auth

import "github.com/angelmondragon/gestion-backend/pkg/enums"

// Actor is the authenticated caller as seen by domain services.
type Actor struct {
	UserID    int64
	Role      enums.UserRole
	Superuser bool
}

// ActorFromClaims projects verified token claims onto an Actor.
func ActorFromClaims(claims *AccessTokenClaims) Actor {
	if claims == nil {
		return Actor{}
	}
	return Actor{UserID: claims.UserID, Role: claims.Role, Superuser: claims.Superuser}
}

// CanManageSupplierOrders reports whether the actor may edit purchase order lines.
func (a Actor) CanManageSupplierOrders() bool {
	return a.Superuser || a.Role.CanManageSupplierOrders()
}
