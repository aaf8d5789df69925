package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrPortDeclined is returned when the user rejects a substitute port.
// The CLI turns it into a non-zero exit.
var ErrPortDeclined = errors.New("port substitution declined")

// Negotiate returns desired when it is free to listen on. When taken,
// the next free port is located; on a real terminal the user is asked
// to accept the substitute, otherwise it is accepted silently.
func Negotiate(host string, desired int, in *os.File, out io.Writer) (int, error) {
	if available(host, desired) {
		return desired, nil
	}

	alt, err := nextAvailable(host, desired+1)
	if err != nil {
		return 0, err
	}

	if in == nil || !isatty.IsTerminal(in.Fd()) {
		fmt.Fprintf(out, "port %d is taken, using %d instead\n", desired, alt)
		return alt, nil
	}

	prompt := fmt.Sprintf("Port %d is already in use. Use port %d instead?", desired, alt)
	if !confirm(in, out, prompt) {
		return 0, ErrPortDeclined
	}
	return alt, nil
}

// available reports whether the port can be listened on.
func available(host string, port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}

// nextAvailable scans upward from start for a free port.
func nextAvailable(host string, start int) (int, error) {
	for p := start; p <= 65535; p++ {
		if available(host, p) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("no free port at or above %d", start)
}

// confirm asks a yes/no question; empty input counts as yes.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [Y/n] ", prompt)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}
