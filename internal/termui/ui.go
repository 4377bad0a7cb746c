/* Package termui implements the line-oriented session protocol used by the
shorthand demo.

A Request scans user input one command line at a time, splitting ( maybe
quoted ) args within each line on demand, while leaving the raw remainder of
a line available for commands that take free-form text. A Response buffers
handler output, flushing whole lines as they complete.

*/
package termui

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// Handler is the interface implemented by pieces of session handling logic.
type Handler interface {
	ServeSession(req *Request, resp *Response) error
}

// HandlerFunc is a functional adaptor for Handler.
type HandlerFunc func(req *Request, resp *Response) error

// ServeSession calls the receiver function pointer.
func (f HandlerFunc) ServeSession(req *Request, resp *Response) error { return f(req, resp) }

// Request scans user command lines from an input stream, providing error
// tracking and per-line arg tokenization.
type Request struct {
	err  error
	body io.Reader
	cmd  *bufio.Scanner
	arg  *bufio.Scanner
	line string
	used int // bytes of line consumed by scanned args
}

// StreamRequest builds a Request reading command lines from r.
func StreamRequest(r io.Reader) Request {
	return Request{body: r}
}

// StringRequest builds a Request over fixed input; mainly for tests.
func StringRequest(s string) Request {
	return StreamRequest(strings.NewReader(s))
}

// Serve runs the given handler with the receiver request and a new Response
// writing to w. Returns any handler, request, or response error ( in that
// order of precedence ).
func (req Request) Serve(w io.Writer, handler Handler) (rerr error) {
	if err := req.err; err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = req.err
		}
	}()
	var resp Response
	resp.To = w
	defer func() {
		if ferr := resp.Flush(); rerr == nil {
			rerr = ferr
		}
	}()
	return handler.ServeSession(&req, &resp)
}

// Err returns any request scan error encountered.
func (req *Request) Err() error { return req.err }

// Scan advances to the next command line, resetting arg state.
func (req *Request) Scan() bool {
	if req.err == nil {
		if req.cmd == nil {
			if req.body == nil {
				return false
			}
			req.cmd = bufio.NewScanner(req.body)
			req.cmd.Split(bufio.ScanLines)
		}
		req.arg = nil
		req.line = ""
		req.used = 0
		if req.cmd.Scan() {
			req.line = req.cmd.Text()
			return true
		}
		req.err = req.cmd.Err()
	}
	return false
}

// Command returns the current command line in full.
func (req *Request) Command() string { return req.line }

// ScanArg scans the next argument within the current command line.
func (req *Request) ScanArg() bool {
	if req.err == nil {
		if req.arg == nil {
			if req.cmd == nil && !req.Scan() {
				return false
			}
			req.arg = bufio.NewScanner(bytes.NewReader([]byte(req.line)))
			req.arg.Split(req.scanArg)
		}
		if req.arg.Scan() {
			return true
		}
		req.err = req.arg.Err()
	}
	return false
}

// scanArg wraps ScanArgs to track how much of the line args have consumed,
// so Rest can return the raw remainder.
func (req *Request) scanArg(data []byte, atEOF bool) (advance int, token []byte, err error) {
	advance, token, err = ScanArgs(data, atEOF)
	req.used += advance
	return advance, token, err
}

// Arg returns the current argument, unquoted.
func (req *Request) Arg() string {
	if req.arg == nil {
		return ""
	}
	return UnquoteArg(req.arg.Text())
}

// Rest returns the raw un-split remainder of the current command line, after
// any args scanned so far. The delimiting space after the last scanned arg
// has already been consumed by the arg scan.
func (req *Request) Rest() string {
	if req.used >= len(req.line) {
		return ""
	}
	return req.line[req.used:]
}

// Response represents a reply being written by a Handler.
type Response struct {
	WriteBuffer
}
