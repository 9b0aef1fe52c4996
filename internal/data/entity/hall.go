package entity

type Hall struct {
	Base
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
}
