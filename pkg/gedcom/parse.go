package gedcom

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sosatree/sosatree/pkg/errors"
)

// ParseFile reads and parses a GEDCOM file from disk.
func ParseFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads GEDCOM records from r and builds a Tree.
//
// Unknown tags and records are skipped; a malformed line (missing level or
// tag) fails with INVALID_GEDCOM so silently broken files don't produce
// silently empty charts.
func Parse(r io.Reader) (*Tree, error) {
	tree := &Tree{
		individuals: make(map[string]*Individual),
		families:    make(map[string]*family),
	}

	var (
		curIndi *Individual
		curFam  *family
	)

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		// Leading whitespace is tolerated; some exporters indent by level.
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			continue
		}

		level, xref, tag, value, err := splitLine(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGedcom, err, "line %d", lineno)
		}

		switch level {
		case 0:
			curIndi, curFam = nil, nil
			switch tag {
			case "INDI":
				curIndi = &Individual{Xref: xref, tree: tree}
				tree.individuals[xref] = curIndi
			case "FAM":
				curFam = &family{xref: xref}
				tree.families[xref] = curFam
			}
		case 1:
			switch {
			case curIndi != nil:
				applyIndiTag(curIndi, tag, value)
			case curFam != nil:
				applyFamTag(curFam, tag, value)
			}
		}
		// Deeper levels carry detail the chart doesn't use.
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGedcom, err, "read gedcom")
	}

	return tree, nil
}

// splitLine parses "LEVEL [@XREF@] TAG [value]".
func splitLine(line string) (level int, xref, tag, value string, err error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 {
		return 0, "", "", "", errors.New(errors.ErrCodeInvalidGedcom, "short line: %q", line)
	}

	level, convErr := strconv.Atoi(fields[0])
	if convErr != nil {
		return 0, "", "", "", errors.New(errors.ErrCodeInvalidGedcom, "bad level in %q", line)
	}

	rest := fields[1]
	if strings.HasPrefix(rest, "@") {
		xref = strings.Trim(rest, "@")
		if len(fields) < 3 {
			return 0, "", "", "", errors.New(errors.ErrCodeInvalidGedcom, "xref without tag: %q", line)
		}
		parts := strings.SplitN(fields[2], " ", 2)
		tag = parts[0]
		if len(parts) == 2 {
			value = parts[1]
		}
		return level, xref, tag, value, nil
	}

	tag = rest
	if len(fields) == 3 {
		value = fields[2]
	}
	return level, "", tag, value, nil
}

func applyIndiTag(i *Individual, tag, value string) {
	switch tag {
	case "NAME":
		i.Name = cleanName(value)
	case "SEX":
		i.Sex = value
	case "FAMC":
		i.famc = strings.Trim(value, "@")
	case "FAMS":
		i.fams = append(i.fams, strings.Trim(value, "@"))
	}
}

func applyFamTag(f *family, tag, value string) {
	switch tag {
	case "HUSB":
		f.husb = strings.Trim(value, "@")
	case "WIFE":
		f.wife = strings.Trim(value, "@")
	}
}

// cleanName strips the /surname/ markers: "John /Smith/" -> "John Smith".
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "/", "")
	return strings.Join(strings.Fields(name), " ")
}
