package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var requiredKeys = []string{"smgrclPath", "port", "host", "phrase", "pass"}

// Prompter asks the user for values
type Prompter interface {
	Ask(question string) (string, error)
	AskSecret(question string) (string, error)
	Tell(message string)
}

// File is a parsed connections document
type File struct {
	Connections []Connection
}

// LoadFile reads a JSON document with a "connections" list
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes a connections document.
// Every entry must carry the required keys, even if their values are empty.
func ParseFile(data []byte) (*File, error) {
	var doc struct {
		Connections []json.RawMessage `json:"connections"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: config file is not valid JSON: %v", ErrInvalid, err)
	}
	if len(doc.Connections) == 0 {
		return nil, fmt.Errorf("%w: config file is missing a valid 'connections' list", ErrInvalid)
	}

	f := &File{Connections: make([]Connection, 0, len(doc.Connections))}
	for i, raw := range doc.Connections {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(raw, &keys); err != nil {
			return nil, fmt.Errorf("%w: connection %d is not an object", ErrInvalid, i)
		}

		var missing []string
		for _, k := range requiredKeys {
			if _, ok := keys[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: config entry %d is missing keys: %s", ErrInvalid, i, strings.Join(missing, ", "))
		}

		var conn Connection
		if err := json.Unmarshal(raw, &conn); err != nil {
			return nil, fmt.Errorf("%w: connection %d: %v", ErrInvalid, i, err)
		}
		f.Connections = append(f.Connections, conn)
	}

	return f, nil
}

// Choose picks a connection, asking the user when there is more than one
func (f *File) Choose(p Prompter) (*Connection, error) {
	if len(f.Connections) == 1 {
		conn := f.Connections[0]
		return &conn, nil
	}

	p.Tell("Available configurations")
	for i, conn := range f.Connections {
		p.Tell(fmt.Sprintf("%2d - %s", i, conn.Name))
	}

	for {
		answer, err := p.Ask("Choose the config: ")
		if err != nil {
			return nil, err
		}
		id, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			p.Tell("Invalid number, try again.")
			continue
		}
		if id < 0 || id >= len(f.Connections) {
			p.Tell("Config out of range, try again.")
			continue
		}
		conn := f.Connections[id]
		return &conn, nil
	}
}

// FromFile loads path, selects a connection and asks for its password if it has one
func FromFile(path string, p Prompter) (*Connection, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	conn, err := f.Choose(p)
	if err != nil {
		return nil, err
	}

	if conn.HasPassword {
		conn.Password, err = p.AskSecret("Password: ")
		if err != nil {
			return nil, err
		}
	}

	return conn, nil
}

// FromPrompt asks for every parameter, falling back to the environment
func FromPrompt(p Prompter) (*Connection, error) {
	conn := &Connection{Name: "interactive"}
	var err error

	if conn.SmgrclPath, err = askWithEnv(p, "Path to ucybsmcl. Leave empty to use env variable $"+EnvSmcl+":  ", EnvSmcl); err != nil {
		return nil, err
	}
	if conn.Host, err = p.Ask("Hostname: "); err != nil {
		return nil, err
	}
	port, err := askWithEnv(p, "ServiceManager port. Leave empty to use env variable $"+EnvPort+":  ", EnvPort)
	if err != nil {
		return nil, err
	}
	conn.Port = Port(port)
	if conn.Phrase, err = askWithEnv(p, "Phrase. Leave empty to use env variable $"+EnvPhrase+":  ", EnvPhrase); err != nil {
		return nil, err
	}
	if conn.Password, err = p.AskSecret("Password. Leave empty if no password is configured "); err != nil {
		return nil, err
	}
	conn.HasPassword = conn.Password != ""

	conn.Host = strings.TrimSpace(conn.Host)
	conn.Certificate = os.Getenv(EnvCertificate)
	conn.Key = os.Getenv(EnvKey)
	conn.Chain = os.Getenv(EnvChain)

	return conn, nil
}

func askWithEnv(p Prompter, question, env string) (string, error) {
	answer, err := p.Ask(question)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = os.Getenv(env)
	}
	return answer, nil
}
