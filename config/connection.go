package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Connection identifies one service manager and how to reach it
type Connection struct {
	Name        string `json:"name"`
	SmgrclPath  string `json:"smgrclPath"`
	Port        Port   `json:"port"`
	Host        string `json:"host"`
	Phrase      string `json:"phrase"`
	HasPassword bool   `json:"pass"`
	Certificate string `json:"certificate,omitempty"`
	Key         string `json:"key,omitempty"`
	Chain       string `json:"chain,omitempty"`

	// Password is prompted for, never read from the file
	Password string `json:"-"`
}

// Port accepts both 8871 and "8871" in JSON
type Port string

// UnmarshalJSON implements json.Unmarshaler
func (p *Port) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Port(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("port must be a number or string: %w", err)
	}
	*p = Port(n.String())
	return nil
}

// Addr returns host:port as passed to -h
func (c *Connection) Addr() string {
	return c.Host + ":" + string(c.Port)
}

// Validate checks the connection before the dialog starts
func (c *Connection) Validate() error {
	var missing []string
	if c.SmgrclPath == "" {
		missing = append(missing, EnvSmcl+" / ucybsmcl path")
	}
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.Port == "" {
		missing = append(missing, EnvPort+" / port")
	}
	if c.Phrase == "" {
		missing = append(missing, EnvPhrase+" / phrase")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required values: %s", ErrInvalid, strings.Join(missing, ", "))
	}

	info, err := os.Stat(c.SmgrclPath)
	if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: invalid ucybsmcl path %q: file not found or not executable", ErrInvalid, c.SmgrclPath)
	}

	if !isDigits(string(c.Port)) {
		return fmt.Errorf("%w: invalid port %q: must be numeric", ErrInvalid, c.Port)
	}

	if (c.Certificate != "" || c.Key != "" || c.Chain != "") && (c.Certificate == "" || c.Key == "") {
		return fmt.Errorf("%w: certificate auth requires both certificate and key files", ErrInvalid)
	}

	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
