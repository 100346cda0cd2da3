package guard

import "strings"

// Storefront paths the guard knows about.
const (
	PathHome         = "/"
	PathLogin        = "/auth/login"
	PathSignup       = "/auth/signup"
	PathLogout       = "/auth/logout"
	PathUnauthorized = "/unauthorized"

	BuyerPrefix  = "/buyer"
	SellerPrefix = "/seller"

	PathBuyerDashboard    = BuyerPrefix + "/dashboard"
	PathBuyerCart         = BuyerPrefix + "/cart"
	PathSellerDashboard   = SellerPrefix + "/dashboard"
	PathSellerAddProduct  = SellerPrefix + "/add-product"
	PathSellerEditProduct = SellerPrefix + "/edit-product"
)

// Class is the protection class of a storefront path.
type Class int

const (
	Unrestricted Class = iota
	// PublicOnly pages are meant for visitors who are not signed in.
	PublicOnly
	BuyerProtected
	SellerProtected
)

func (c Class) String() string {
	switch c {
	case PublicOnly:
		return "public-only"
	case BuyerProtected:
		return "buyer-protected"
	case SellerProtected:
		return "seller-protected"
	default:
		return "unrestricted"
	}
}

// Protected reports whether the class requires a signed in visitor.
func (c Class) Protected() bool {
	return c == BuyerProtected || c == SellerProtected
}

var publicOnly = map[string]struct{}{
	PathHome:   {},
	PathLogin:  {},
	PathSignup: {},
}

// Classify maps a request path to its protection class. Public-only paths
// match exactly; protected prefixes match whole path segments, so
// "/sellers" is not under "/seller".
func Classify(path string) Class {
	path = normalize(path)
	if _, ok := publicOnly[path]; ok {
		return PublicOnly
	}
	switch {
	case underPrefix(path, BuyerPrefix):
		return BuyerProtected
	case underPrefix(path, SellerPrefix):
		return SellerProtected
	default:
		return Unrestricted
	}
}

func normalize(path string) string {
	if path == "" {
		return PathHome
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return PathHome
		}
	}
	return path
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
