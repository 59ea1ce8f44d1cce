package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pan0cc/qbegen/config"
	"github.com/pan0cc/qbegen/pkg/cast"
)

// addFixture is a tiny `int add(int a, int b) { return a + b; }`
// translation unit, the same shape exercised end to end by
// pkg/fixturegen's own tests, used here to ground the CLI's wiring
// rather than the lowering itself.
func addFixture() *cast.ModuleSpec {
	intT := cast.TypeSpec{Kind: "int", Size: 4, Signed: true}
	return &cast.ModuleSpec{
		Functions: []cast.FuncSpec{{
			Name:       "add",
			Exported:   true,
			ReturnType: intT,
			Params: []cast.ParamSpec{
				{Name: "a", Type: intT},
				{Name: "b", Type: intT},
			},
			Body: []cast.StmtSpec{{
				Kind: "return",
				Expr: &cast.ExprSpec{
					Kind: "binary",
					Op:   "add",
					L:    &cast.ExprSpec{Kind: "ident", Name: "a"},
					R:    &cast.ExprSpec{Kind: "ident", Name: "b"},
				},
			}},
		}},
	}
}

func TestRunEmitStreamsSSAText(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := runEmitSpec(&out, &errOut, addFixture(), config.Default()); err != nil {
		t.Fatalf("runEmitSpec: %v", err)
	}
	if !strings.Contains(out.String(), "export function w $add(w %.1, w %.3) {") {
		t.Fatalf("expected add's signature in output, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "=w add %.5, %.6") {
		t.Fatalf("expected the add instruction over the two loaded parameters, got:\n%s", out.String())
	}
}

func TestRunEmitBufferModeStillReachesOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := config.Default()
	cfg.Mode = config.EmitBuffer
	if err := runEmitSpec(&out, &errOut, addFixture(), cfg); err != nil {
		t.Fatalf("runEmitSpec: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected buffered output to still reach the writer")
	}
}

func TestRunEmitDumpSSANotesCompletionOnStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := config.Default()
	cfg.DumpSSA = true
	if err := runEmitSpec(&out, &errOut, addFixture(), cfg); err != nil {
		t.Fatalf("runEmitSpec: %v", err)
	}
	if !strings.Contains(errOut.String(), "ssa emission complete") {
		t.Fatalf("expected a completion note on stderr, got %q", errOut.String())
	}
}
