// Command hashpw prints a bcrypt hash suitable for an AUTH_USERS entry.
//
// Bcrypt hashes contain '$'. godotenv expands '$' in unquoted and
// double-quoted values, so a hash placed in a .env file must be
// single-quoted. The -env flag prints a ready-to-paste line.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"libraryapi/internal/platform/crypto"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hashpw", flag.ContinueOnError)
	user := fs.String("user", "", "print a full AUTH_USERS entry for this username")
	allowWeak := fs.Bool("allow-weak", false, "skip the password strength check")
	asEnv := fs.Bool("env", false, "print a single-quoted AUTH_USERS='user:hash' line for a .env file (requires -user)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: hashpw [-user name] [-env] [-allow-weak] < password")
		fmt.Fprintln(fs.Output(), "bcrypt hashes contain '$'; single-quote them in .env files or godotenv will expand them.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *asEnv && *user == "" {
		return errors.New("-env requires -user")
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("empty password on stdin")
	}

	if !*allowWeak {
		if err := crypto.ValidatePasswordStrength(password); err != nil {
			return fmt.Errorf("%w (use -allow-weak to override)", err)
		}
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	if *asEnv {
		_, err = fmt.Fprintf(stdout, "AUTH_USERS='%s:%s'\n", *user, hash)
		return err
	}
	if *user != "" {
		_, err = fmt.Fprintf(stdout, "%s:%s\n", *user, hash)
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}
