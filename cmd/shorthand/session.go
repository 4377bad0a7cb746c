package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mdedit/shorthand/internal/doctree"
	"github.com/mdedit/shorthand/internal/markdown"
	"github.com/mdedit/shorthand/internal/termui"
	"github.com/mdedit/shorthand/shortcut"
)

type session struct {
	eng   *shortcut.Engine
	doc   *doctree.Document
	store store
	cmds  commandMux
}

type command interface {
	describe() string
	run(s *session, req *termui.Request, resp *termui.Response) error
}

type commandFunc func(s *session, req *termui.Request, resp *termui.Response) error

type commandHelp struct {
	commandFunc
	d string
}

func (ch commandHelp) describe() string { return ch.d }
func (fn commandFunc) run(s *session, req *termui.Request, resp *termui.Response) error {
	return fn(s, req, resp)
}

type commandMux map[string]command

func (mux commandMux) handle(name string, d string, fn commandFunc) {
	if mux[name] != nil {
		panic(fmt.Sprintf("%q command already defined", name))
	}
	mux[name] = commandHelp{fn, d}
}

func (s *session) init() {
	s.eng = shortcut.New()
	s.doc = doctree.New()
	s.doc.SelectEnd()
	s.cmds = commandMux{}
	s.cmds.handle("type", "feed the rest of the line through the engine, one character at a time", (*session).cmdType)
	s.cmds.handle("enter", "split the current block at the caret", (*session).cmdEnter)
	s.cmds.handle("back", "backward-delete N times (default 1)", (*session).cmdBack)
	s.cmds.handle("show", "dump the document tree", (*session).cmdShow)
	s.cmds.handle("md", "render the document as markdown", (*session).cmdMD)
	s.cmds.handle("load", "load a markdown file, replacing the document", (*session).cmdLoad)
	s.cmds.handle("save", "save the document as markdown", (*session).cmdSave)
	s.cmds.handle("reset", "replace the document with an empty paragraph", (*session).cmdReset)
	s.cmds.handle("help", "list commands", (*session).cmdHelp)
}

// ServeSession dispatches each command line to its handler; unknown names
// get a usage nudge rather than an error, the session keeps going.
func (s *session) ServeSession(req *termui.Request, resp *termui.Response) error {
	for req.Scan() {
		if !req.ScanArg() {
			continue
		}
		name := req.Arg()
		if name == "" {
			continue
		}
		cmd := s.cmds[name]
		if cmd == nil {
			fmt.Fprintf(resp, "unknown command %q; try \"help\"\n", name)
		} else if err := cmd.run(s, req, resp); err != nil {
			return err
		}
		if err := resp.MaybeFlush(); err != nil {
			return err
		}
	}
	return req.Err()
}

func (s *session) cmdType(req *termui.Request, resp *termui.Response) error {
	for _, r := range req.Rest() {
		s.eng.InsertText(s.doc, string(r))
	}
	return nil
}

func (s *session) cmdEnter(req *termui.Request, resp *termui.Response) error {
	s.doc.InsertBreak()
	return nil
}

func (s *session) cmdBack(req *termui.Request, resp *termui.Response) error {
	n := 1
	if req.ScanArg() {
		m, err := strconv.Atoi(req.Arg())
		if err != nil {
			fmt.Fprintf(resp, "bad count %q\n", req.Arg())
			return nil
		}
		n = m
	}
	for i := 0; i < n; i++ {
		s.eng.DeleteBackward(s.doc)
	}
	return nil
}

func (s *session) cmdShow(req *termui.Request, resp *termui.Response) error {
	_, err := fmt.Fprintf(resp, "%+v\n", s.doc)
	return err
}

func (s *session) cmdMD(req *termui.Request, resp *termui.Response) error {
	return markdown.Write(resp, s.doc)
}

func (s *session) cmdLoad(req *termui.Request, resp *termui.Response) error {
	if !req.ScanArg() {
		fmt.Fprintln(resp, "usage: load <file>")
		return nil
	}
	if err := s.load(req.Arg()); err != nil {
		fmt.Fprintln(resp, err)
	}
	return nil
}

// load replaces the document with the parsed contents of a markdown file,
// placing the caret at the end.
func (s *session) load(name string) error {
	b, err := s.store.load(name)
	if err != nil {
		return err
	}
	s.doc = markdown.Parse(b)
	s.doc.SelectEnd()
	return nil
}

func (s *session) cmdSave(req *termui.Request, resp *termui.Response) error {
	name := ""
	if req.ScanArg() {
		name = req.Arg()
	}
	if err := s.store.save(name, []byte(markdown.String(s.doc))); err != nil {
		fmt.Fprintln(resp, err)
	}
	return nil
}

func (s *session) cmdReset(req *termui.Request, resp *termui.Response) error {
	s.doc = doctree.New()
	s.doc.SelectEnd()
	return nil
}

func (s *session) cmdHelp(req *termui.Request, resp *termui.Response) error {
	names := make([]string, 0, len(s.cmds))
	for name := range s.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(resp, "- %s: %s\n", name, s.cmds[name].describe())
	}
	return nil
}
