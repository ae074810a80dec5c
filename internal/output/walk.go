package output

// NullChecks returns the names guarded by the NullCheck statements of body.
func NullChecks(body []Stmt) []string {
	var names []string
	for _, s := range body {
		if nc, ok := s.(NullCheck); ok {
			names = append(names, nc.Name)
		}
	}
	return names
}
