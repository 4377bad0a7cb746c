package main

import (
	"errors"
	"io/ioutil"

	"github.com/google/renameio"
)

var errNoFile = errors.New("no file to save to; use save <file>")

// store tracks the session's backing file. Saves go through an atomic
// rename so a crash mid-write never clobbers the previous contents.
type store struct {
	filename string
}

func (st *store) load(name string) ([]byte, error) {
	b, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, err
	}
	st.filename = name
	return b, nil
}

func (st *store) save(name string, content []byte) error {
	if name == "" {
		name = st.filename
	}
	if name == "" {
		return errNoFile
	}
	if err := renameio.WriteFile(name, content, 0666); err != nil {
		return err
	}
	st.filename = name
	return nil
}
