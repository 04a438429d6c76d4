package smcl

// Args accumulates the flags for a single invocation.
// Starting every call from NewArgs keeps flags from leaking between commands.
type Args struct {
	conn    Connection
	command Command
	target  string
	mode    StopMode
	field   DataField
	value   string
	hasData bool
}

// NewArgs starts an argument list for the given connection
func NewArgs(conn Connection) *Args {
	return &Args{conn: conn}
}

// Command sets -c
func (a *Args) Command(c Command) *Args {
	a.command = c
	return a
}

// Target sets -s
func (a *Args) Target(name string) *Args {
	a.target = name
	return a
}

// Mode sets -m; StopNormal omits the flag
func (a *Args) Mode(m StopMode) *Args {
	a.mode = m
	return a
}

// Data sets -d field value
func (a *Args) Data(field DataField, value string) *Args {
	a.field = field
	a.value = value
	a.hasData = true
	return a
}

// Build returns a newly allocated argument slice, without the executable itself
func (a *Args) Build() []string {
	return a.build(a.conn.Password)
}

// Redacted is Build with the password masked, for logging
func (a *Args) Redacted() []string {
	pass := a.conn.Password
	if pass != "" {
		pass = "******"
	}
	return a.build(pass)
}

func (a *Args) build(password string) []string {
	args := []string{"-h", a.conn.Addr, "-n", a.conn.Phrase, "-p", password}
	if a.conn.Certificate != "" {
		args = append(args, "-certificate", a.conn.Certificate)
	}
	if a.conn.Key != "" {
		args = append(args, "-key", a.conn.Key)
	}
	if a.conn.Chain != "" {
		args = append(args, "-chain", a.conn.Chain)
	}
	if a.command != "" {
		args = append(args, "-c", string(a.command))
	}
	if a.target != "" {
		args = append(args, "-s", a.target)
	}
	if a.mode != StopNormal {
		args = append(args, "-m", string(a.mode))
	}
	if a.hasData {
		args = append(args, "-d", string(a.field), a.value)
	}
	return args
}
