package models

// Claim names used by the token issuer and the identity resolver.
const (
	ClaimSubject = "sub"
	ClaimIssuer  = "iss"
)

// Claim is a single asserted fact about an authenticated caller.
type Claim struct {
	Name  string
	Value string
}

// ClaimSet is the ordered collection of claims asserted for a caller.
// A plain slice keeps it independent from any token or framework type.
type ClaimSet []Claim

// Get returns the value of the first claim with the given name.
func (cs ClaimSet) Get(name string) (string, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
