// Package seed loads sample patrons from YAML into the registry.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"library-backend/internal/domains/person/model"
	"library-backend/internal/domains/person/service"
	"library-backend/pkg/logger"
)

// File is the seed document:
//
//	patrons:
//	  - name: Alice Pauline
//	    phone: "94351253"
//	    email: alice@example.com
//	    address: 123, Jurong West Ave 6, #08-111
//	    tags: [friends]
//	    borrowed_books:
//	      - {title: Beloved, author: Toni Morrison}
type File struct {
	Patrons []Patron `yaml:"patrons"`
}

type Patron struct {
	Name          string   `yaml:"name"`
	Phone         string   `yaml:"phone"`
	Email         string   `yaml:"email"`
	Address       string   `yaml:"address"`
	Tags          []string `yaml:"tags"`
	BorrowedBooks []Book   `yaml:"borrowed_books"`
}

type Book struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// Result counts what Apply did
type Result struct {
	Created int
	Skipped int
}

// Parse decodes a seed document. Unknown keys are rejected so typos do
// not silently drop data.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return &f, nil
}

// LoadFile reads and parses the seed file at path
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Apply creates every patron in f through svc. Patrons that already
// exist (same name) are skipped; any other failure stops the run.
func Apply(ctx context.Context, svc service.ServiceInterface, f *File) (Result, error) {
	var res Result
	for i, p := range f.Patrons {
		name := p.Name
		created, err := svc.Create(ctx, &model.CreatePatronRequest{
			Name:    &name,
			Phone:   p.Phone,
			Email:   p.Email,
			Address: p.Address,
			Tags:    p.Tags,
		})
		if errors.Is(err, model.ErrDuplicatePerson) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed patron %d (%q): %w", i, p.Name, err)
		}

		for _, b := range p.BorrowedBooks {
			_, err := svc.BorrowBook(ctx, created.ID, &model.BorrowBookRequest{Title: b.Title, Author: b.Author})
			if err != nil {
				return res, fmt.Errorf("seed patron %d (%q) book %q: %w", i, p.Name, b.Title, err)
			}
		}
		res.Created++
	}

	logger.Info("patron seed applied", map[string]interface{}{
		"created": res.Created,
		"skipped": res.Skipped,
	})
	return res, nil
}
