// Package policy holds the authorization predicates. Each predicate is a
// plain boolean function over the caller's identity, the HTTP method and,
// for object-level checks, the owner of the target. Callers combine them
// per endpoint and translate a false result into a generic 403 so that a
// denied request leaks nothing about whether the object exists.
package policy

import (
	"net/http"

	"reviewhub/internal/models"
)

// Identity is the resolved caller of a request. The zero value is the
// anonymous identity.
type Identity struct {
	ID            string
	Username      string
	Role          string
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Identity{}

// ReadOnly reports whether the method is safe (never mutates state).
func ReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin is true only for authenticated admins.
func IsAdmin(id Identity) bool {
	return id.Authenticated && id.Role == models.RoleAdmin
}

// IsModeratorOrAdmin is true for moderators and admins. Moderators carry
// admin-level write access for review/comment moderation but not for user
// administration.
func IsModeratorOrAdmin(id Identity) bool {
	return id.Authenticated && (id.Role == models.RoleModerator || id.Role == models.RoleAdmin)
}

// AdminOrReadOnly allows safe methods unconditionally and requires the
// admin role for anything that mutates.
func AdminOrReadOnly(id Identity, method string) bool {
	return ReadOnly(method) || IsAdmin(id)
}

// AuthorOrPrivilegedOrReadOnly is the object-level gate for reviews and
// comments: reads pass, creation requires any authenticated identity, and
// mutation of an existing object requires the author, a moderator or an
// admin.
func AuthorOrPrivilegedOrReadOnly(id Identity, method, authorID string) bool {
	if ReadOnly(method) {
		return true
	}
	if !id.Authenticated {
		return false
	}
	return id.ID == authorID || IsModeratorOrAdmin(id)
}

// CanCreate reports whether the identity may create nested resources
// (reviews, comments): any authenticated identity qualifies.
func CanCreate(id Identity) bool {
	return id.Authenticated
}

// SelfOrAdmin gates the profile endpoints: the "me" alias resolves to the
// caller and is open to any authenticated identity; addressing a profile
// by username requires admin. The method-shaped rules (PUT always
// rejected, self-delete rejected) are enforced by the handler before this
// predicate runs.
func SelfOrAdmin(id Identity, isSelfAlias bool) bool {
	if isSelfAlias {
		return id.Authenticated
	}
	return IsAdmin(id)
}
