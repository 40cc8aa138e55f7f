package compiler_test

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/oxhq/tsgroundwork/internal/checker"
	"github.com/oxhq/tsgroundwork/internal/compiler"
	"github.com/oxhq/tsgroundwork/internal/diag"
)

// Each scenario fixture under testdata/scenarios is a txtar archive: the
// comment holds one directive per line, the files are the sources to
// compile together in one batch.
//
//	expect <file> <code>   -- file must report diagnostic code
//	clean <file>           -- file must report zero diagnostics
//	query <file> <substr>  -- TypeAt the "/*Q*/"-marked position in file
//	                          must produce a string containing substr
func TestEndToEndScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario fixtures found")

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var files []compiler.File
			for _, f := range ar.Files {
				files = append(files, compiler.File{Path: f.Name, Source: f.Data})
			}

			s := compiler.New()
			h, err := compiler.BeginCompilation(s, files, checker.Options{}, nil)
			require.NoError(t, err)

			sc := bufio.NewScanner(bytes.NewReader(ar.Comment))
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				fields := strings.Fields(line)
				switch fields[0] {
				case "expect":
					require.Len(t, fields, 3, "malformed expect directive: %q", line)
					wantCode, err := strconv.Atoi(fields[2])
					require.NoError(t, err, "malformed diagnostic code in %q", line)
					ds, err := s.Diagnostics(h, fields[1])
					require.NoError(t, err)
					var codes []diag.Code
					for _, d := range ds {
						codes = append(codes, d.Code)
					}
					assert.Contains(t, codes, diag.Code(wantCode), "%s diagnostics: %v", fields[1], ds)
				case "clean":
					require.Len(t, fields, 2, "malformed clean directive: %q", line)
					ds, err := s.Diagnostics(h, fields[1])
					require.NoError(t, err)
					assert.Empty(t, ds, "%s should have no diagnostics", fields[1])
				case "query":
					require.Len(t, fields, 3, "malformed query directive: %q", line)
					var src []byte
					for _, f := range ar.Files {
						if f.Name == fields[1] {
							src = f.Data
						}
					}
					require.NotNil(t, src, "query directive references unknown file %q", fields[1])
					marker := []byte("/*Q*/")
					idx := bytes.Index(src, marker)
					require.GreaterOrEqual(t, idx, 0, "query directive requires a /*Q*/ marker in %s", fields[1])
					pos := idx + len(marker)
					got, err := s.TypeAt(h, fields[1], pos)
					require.NoError(t, err)
					assert.Contains(t, got, fields[2])
				default:
					t.Fatalf("unknown scenario directive: %q", line)
				}
			}
		})
	}
}
