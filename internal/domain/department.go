package domain

// Department represents an organizational unit owning zero or more roles.
type Department struct {
	ID   int64
	Name string
}
