package auth

import "github.com/spec-kit/storefront/internal/domain"

// roleSet is a route allow-list. An empty set admits any authenticated role.
type roleSet map[domain.Role]struct{}

func newRoleSet(allowed []domain.Role) roleSet {
	set := make(roleSet, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}
	return set
}

func (s roleSet) permits(role domain.Role) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[role]
	return ok
}
