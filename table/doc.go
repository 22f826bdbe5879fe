// Package table defines columns and the row model boundary of a data table.
//
// Columns are declared once with an accessor per value and an optional
// cell formatter. The row model decides which rows are shown and in which
// order; with server-driven pagination that is Manual, which returns the
// rows exactly as the server sent them.
//
//	cols := table.Columns[User]{
//	    {ID: "name", Header: "Name", Accessor: func(u User) any { return u.Name }, Sortable: true},
//	    {ID: "email", Header: "Email", Accessor: func(u User) any { return u.Email }},
//	}
package table
