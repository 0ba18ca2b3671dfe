package format

// DerefString returns *s or defaultVal when s is nil.
func DerefString(s *string, defaultVal string) string {
	if s != nil {
		return *s
	}
	return defaultVal
}

// DerefInt returns *i or defaultVal when i is nil.
func DerefInt(i *int, defaultVal int) int {
	if i != nil {
		return *i
	}
	return defaultVal
}
