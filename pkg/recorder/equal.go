// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recorder

import (
	"encoding/json"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// argsEqual reports whether two argument values are structurally equal.
// NoArgs only equals NoArgs. Other values are compared by their canonical
// JSON form, so that map key order and the concrete numeric or struct type
// do not matter. Values that cannot be encoded are compared as they are.
func argsEqual(expected, actual interface{}) bool {
	if expected == NoArgs || actual == NoArgs {
		return expected == NoArgs && actual == NoArgs
	}

	ce, errE := canonical(expected)
	ca, errA := canonical(actual)
	if errE != nil || errA != nil {
		return cmp.Equal(expected, actual, exportAll)
	}
	return cmp.Equal(ce, ca)
}

// canonical returns v decoded back from its JSON encoding.
func canonical(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// exportAll lets cmp descend into unexported struct fields.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })
