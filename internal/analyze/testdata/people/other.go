package people

// Describe lives in another file but still belongs to Person.
func (p Person) Describe() string { return p.Name }
