package model

import "fmt"

// enumName returns the table entry for v, or a placeholder when v is out of range.
func enumName[T ~uint8](names []string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", uint8(v))
}

// parseEnum looks s up in names and returns its index as T.
func parseEnum[T ~uint8](kind string, names []string, s string) (T, error) {
	for i, n := range names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("invalid %s %q", kind, s)
}
