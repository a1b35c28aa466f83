package refmatch

import "regexp"

var md5Pattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// validateContig checks the per-Contig invariants of spec §3: length is
// positive, the name is non-empty, any MD5 present is syntactically
// valid, and aliases does not contain the name itself. It returns a
// human-readable reason or "" if the contig is valid.
func validateContig(c Contig) string {
	if c.Name == "" {
		return "contig name must be non-empty"
	}
	if c.Length <= 0 {
		return "contig length must be positive"
	}
	if c.MD5 != "" && !md5Pattern.MatchString(c.MD5) {
		return "contig md5 must be 32 lowercase hex characters"
	}
	for _, a := range c.Aliases {
		if a == c.Name {
			return "contig aliases must not contain the contig's own name"
		}
	}
	return ""
}

// validateNoDuplicateNames checks the QueryHeader-level invariant that
// no two contigs share a name.
func validateNoDuplicateNames(contigs []Contig) (dup string, ok bool) {
	seen := make(map[string]struct{}, len(contigs))
	for _, c := range contigs {
		if _, exists := seen[c.Name]; exists {
			return c.Name, false
		}
		seen[c.Name] = struct{}{}
	}
	return "", true
}
