// Package principal describes the already-authenticated caller handed to
// wallet operations.
package principal

type Kind string

const (
	KindUser   Kind = "user"
	KindAPIKey Kind = "api_key"
)

type Permission string

const (
	PermDeposit  Permission = "deposit"
	PermTransfer Permission = "transfer"
	PermRead     Permission = "read"
)

// All is granted to interactive users.
var All = []Permission{PermDeposit, PermTransfer, PermRead}

type Principal struct {
	Kind        Kind
	UserID      int
	KeyID       int
	Permissions []Permission
}

func NewUser(userID int) Principal {
	return Principal{Kind: KindUser, UserID: userID, Permissions: All}
}

func (p Principal) Has(perm Permission) bool {
	for _, granted := range p.Permissions {
		if granted == perm {
			return true
		}
	}
	return false
}

func ParsePermissions(raw []string) []Permission {
	out := make([]Permission, 0, len(raw))
	for _, r := range raw {
		switch Permission(r) {
		case PermDeposit, PermTransfer, PermRead:
			out = append(out, Permission(r))
		}
	}
	return out
}
