// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sheet

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// document is the YAML layout of a sheet:
//
//	sections:
//	- kind: ""
//	  terms:
//	  - value: 1girl
//	  - value: blush
//	    status: added
//	- kind: rating
//	  terms:
//	  - value: e
//	    status: edited
//	    orig: s
type document struct {
	Sections []sectionDoc `yaml:"sections"`
}

type sectionDoc struct {
	Kind  string    `yaml:"kind"`
	Terms []termDoc `yaml:"terms,omitempty"`
}

type termDoc struct {
	Value  string `yaml:"value"`
	Status Status `yaml:"status,omitempty"`
	Orig   string `yaml:"orig,omitempty"`
}

// Load reads a sheet in YAML from r. The terms are normalised and keep
// their stored status, a later term with the same key wins.
func Load(r io.Reader) (*Sheet, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading sheet")
	}

	var doc document
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing sheet")
	}

	sh := New()
	for _, sd := range doc.Sections {
		kind := Normalise(Term{Kind: sd.Kind}).Kind
		sect := sh.addSection(kind)

		for _, td := range sd.Terms {
			t, err := loadTerm(kind, td)
			if err != nil {
				return nil, err
			}
			sect.Insert(t)
		}
	}

	log.Debugf("loaded %d sections, %d terms", len(sh.kinds), sh.Len())

	return sh, nil
}

// loadTerm returns the normalised term of td in the section of kind.
func loadTerm(kind string, td termDoc) (*Term, error) {
	t := Normalise(Term{Kind: kind, Value: td.Value})
	t.Status = td.Status

	switch td.Status {
	case StatusCommitted, StatusAdded, StatusDeleted:
		if td.Orig != "" {
			return nil, errors.Errorf("kind %q, value %q: orig %q without edit", kind, td.Value, td.Orig)
		}

	case StatusEdited:
		t.Orig = Normalise(Term{Kind: kind, Value: td.Orig}).Value

		// the original must be an earlier value of the same single valued term
		if t.Orig == t.Value || !bytes.Equal(keyForTerm(&t), KeyFor(kind, t.Orig)) {
			return nil, errors.Errorf("kind %q, value %q: invalid orig %q", kind, td.Value, td.Orig)
		}

	default:
		return nil, errors.Errorf("kind %q, value %q: invalid status %q", kind, td.Value, td.Status)
	}

	return &t, nil
}

// Store writes the sheet in YAML to w, the sections in creation order
// and the terms in key order.
func (sh *Sheet) Store(w io.Writer) error {
	var doc document

	for _, kind := range sh.kinds {
		sd := sectionDoc{Kind: kind}
		for t := range sh.sections[kind].All() {
			sd.Terms = append(sd.Terms, termDoc{Value: t.Value, Status: t.Status, Orig: t.Orig})
		}
		doc.Sections = append(doc.Sections, sd)
	}

	buf, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, "encoding sheet")
	}

	_, err = w.Write(buf)
	return errors.Wrap(err, "writing sheet")
}
