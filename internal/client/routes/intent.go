package routes

// Intent is a navigation instruction. Operations return intents and the
// screen loop applies them.
//
// From records the location that was asked for when the user is sent
// elsewhere (the post-login return target). Replace replaces the current
// history entry instead of pushing one. Hard asks for a full reload: the
// session is rebuilt from storage before the next screen renders.
type Intent struct {
	To      string
	From    string
	Replace bool
	Hard    bool
}

func (i Intent) IsZero() bool {
	return i.To == ""
}

// Go is a plain push navigation.
func Go(to string) Intent {
	return Intent{To: to}
}

// Redirect replaces the current entry and remembers where the user was
// headed.
func Redirect(to, from string) Intent {
	return Intent{To: to, From: from, Replace: true}
}
