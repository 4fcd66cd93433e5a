package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// Normalize clamps page/pageSize into sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Access is the caller's capability on user-owned records: either admin
// (every record) or owner of a single user id.
type Access struct {
	admin  bool
	userID int64
}

func OwnerAccess(userID int64) Access { return Access{userID: userID} }

// AccessFor derives the capability from an authenticated role.
func AccessFor(userID int64, role string) Access {
	if role == RoleAdmin {
		return Access{admin: true, userID: userID}
	}
	return OwnerAccess(userID)
}

func (a Access) IsAdmin() bool { return a.admin }

// UserID is the acting user.
func (a Access) UserID() int64 { return a.userID }

// CanAccess reports whether a record owned by ownerID is visible to a.
func (a Access) CanAccess(ownerID int64) bool {
	return a.admin || (a.userID != 0 && a.userID == ownerID)
}

// Check returns ForbiddenError when the record is not visible.
func (a Access) Check(ownerID int64) error {
	if a.CanAccess(ownerID) {
		return nil
	}
	return ForbiddenError{Msg: "access denied"}
}
