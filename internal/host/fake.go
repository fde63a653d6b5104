package host

import "errors"

// Fake is a Host with fixed answers.
type Fake struct {
	Exe     string
	ExeErr  error
	Wd      string
	WdErr   error
	Env     map[string]string
	User    string
	UserErr error
	Temp    string
	Sep     byte
}

// Executable implements Host.
func (f *Fake) Executable() (string, error) {
	if f.ExeErr != nil {
		return "", f.ExeErr
	}
	if f.Exe == "" {
		return "", errors.New("no executable")
	}
	return f.Exe, nil
}

// Getwd implements Host.
func (f *Fake) Getwd() (string, error) {
	return f.Wd, f.WdErr
}

// LookupEnv implements Host.
func (f *Fake) LookupEnv(key string) (string, bool) {
	v, ok := f.Env[key]
	return v, ok
}

// CurrentUser implements Host.
func (f *Fake) CurrentUser() (string, error) {
	return f.User, f.UserErr
}

// TempDir implements Host.
func (f *Fake) TempDir() string {
	return f.Temp
}

// Separator implements Host. The zero value reports a backslash.
func (f *Fake) Separator() byte {
	if f.Sep == 0 {
		return '\\'
	}
	return f.Sep
}
