package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncobase/datatable/source"
	"github.com/ncobase/datatable/table"
)

// Person is a row of the demo dataset.
type Person struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Status  string    `json:"status"`
	Created time.Time `json:"created_at"`
}

var (
	firstNames = []string{"Ada", "Brian", "Carol", "Dennis", "Edsger", "Frances", "Grace", "Hedy", "Ivan", "Joan", "Ken", "Linus"}
	lastNames  = []string{"Lovelace", "Kernighan", "Shaw", "Ritchie", "Dijkstra", "Allen", "Hopper", "Lamarr", "Sutherland", "Clarke", "Thompson", "Torvalds"}
	statuses   = []string{"active", "invited", "suspended"}
)

// people builds a deterministic dataset of n rows.
func people(n int) []Person {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	out := make([]Person, n)
	for i := range out {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]
		out[i] = Person{
			ID:      i + 1,
			Name:    first + " " + last,
			Email:   fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
			Status:  statuses[i%len(statuses)],
			Created: start.Add(time.Duration(i) * 7 * time.Hour),
		}
	}
	return out
}

func peopleSource(n, perPage, maxPerPage int) *source.Memory[Person] {
	m := source.NewMemory(people(n))
	m.PerPage = perPage
	m.MaxPerPage = maxPerPage
	m.Search = func(p Person, term string) bool {
		term = strings.ToLower(term)
		return strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(p.Email, term)
	}
	m.Sorts = map[string]func(Person) any{
		"id":         func(p Person) any { return p.ID },
		"name":       func(p Person) any { return p.Name },
		"email":      func(p Person) any { return p.Email },
		"created_at": func(p Person) any { return p.Created },
	}
	m.Date = func(p Person) time.Time { return p.Created }
	m.Fields = map[string]func(Person) any{
		"status": func(p Person) any { return p.Status },
	}
	return m
}

func peopleColumns() table.Columns[Person] {
	return table.Columns[Person]{
		{ID: "id", Header: "ID", Accessor: func(p Person) any { return p.ID }, Sortable: true},
		{ID: "name", Header: "Name", Accessor: func(p Person) any { return p.Name }, Sortable: true},
		{ID: "email", Header: "Email", Accessor: func(p Person) any { return p.Email }, Sortable: true},
		{ID: "status", Header: "Status", Accessor: func(p Person) any { return p.Status }},
		{ID: "created_at", Header: "Created", Accessor: func(p Person) any { return p.Created }, Sortable: true},
	}
}
