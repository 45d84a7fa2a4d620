package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/flverkit/pkg/math"
	"github.com/Faultbox/flverkit/pkg/space"
)

// parseFloats parses want numbers from args.
func parseFloats(args []string, want int) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d numbers, got %d", want, len(args))
	}
	out := make([]float64, want)
	for i, s := range args {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, ","), 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// formatFloats joins values with the configured precision.
func (a *app) formatFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		s := strconv.FormatFloat(v, 'f', a.cfg.Conversion.Precision, 64)
		if strings.Trim(s, "-0.") == "" {
			s = strings.TrimPrefix(s, "-")
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

// readEuler converts a command-line Euler triple to radians.
func (a *app) readEuler(v mgl64.Vec3) mgl64.Vec3 {
	if a.cfg.Conversion.Degrees {
		return math.DegToRad(v)
	}
	return v
}

// writeEuler converts radians for printing.
func (a *app) writeEuler(v mgl64.Vec3) mgl64.Vec3 {
	if a.cfg.Conversion.Degrees {
		return math.RadToDeg(v)
	}
	return v
}

func (a *app) printMat3(m mgl64.Mat3) {
	for r := 0; r < 3; r++ {
		row := m.Row(r)
		fmt.Fprintln(a.out, a.formatFloats(row[:]...))
	}
}

func (a *app) printMat4(m mgl64.Mat4) {
	for r := 0; r < 4; r++ {
		row := m.Row(r)
		fmt.Fprintln(a.out, a.formatFloats(row[:]...))
	}
}

// convertKinds lists the value kinds convert accepts with their number counts.
var convertKinds = map[string]int{
	"vector": 3,
	"vec4":   4,
	"euler":  3,
	"quat":   4,
	"mat3":   9,
	"trs":    10,
	"matrix": 16,
}

func (a *app) cmdConvert(args []string) error {
	fs := newFlagSet("convert", "[-to editor|game] vector|vec4|euler|quat|mat3|trs|matrix <numbers>...")
	to := fs.String("to", "editor", "Target space: editor (input is game space) or game")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return usageError(fs)
	}

	kind := fs.Arg(0)
	count, ok := convertKinds[kind]
	if !ok {
		return fmt.Errorf("unknown value kind %q", kind)
	}
	var toEditor bool
	switch *to {
	case "editor":
		toEditor = true
	case "game":
	default:
		return fmt.Errorf("unknown target space %q (want editor or game)", *to)
	}
	if kind == "trs" && !toEditor {
		return fmt.Errorf("trs converts game to editor; use matrix with -to game")
	}
	if kind == "matrix" && toEditor {
		return fmt.Errorf("matrix converts editor to game; use trs for game to editor")
	}

	v, err := parseFloats(fs.Args()[1:], count)
	if err != nil {
		return err
	}

	switch kind {
	case "vector":
		vec := mgl64.Vec3{v[0], v[1], v[2]}
		if toEditor {
			vec = space.GameToEditorVector(vec)
		} else {
			vec = space.EditorToGameVector3(vec)
		}
		fmt.Fprintln(a.out, a.formatFloats(vec[:]...))

	case "vec4":
		var vec mgl64.Vec4
		if toEditor {
			vec = space.GameToEditorVector4(mgl64.Vec4{v[0], v[1], v[2], v[3]})
		} else {
			vec = space.EditorToGameVector4(mgl64.Vec3{v[0], v[1], v[2]}, v[3])
		}
		fmt.Fprintln(a.out, a.formatFloats(vec[:]...))

	case "euler":
		e := a.readEuler(mgl64.Vec3{v[0], v[1], v[2]})
		if toEditor {
			e = space.GameToEditorEuler(e)
		} else {
			e = space.EditorToGameEuler(e)
		}
		e = a.writeEuler(e)
		fmt.Fprintln(a.out, a.formatFloats(e[:]...))

	case "quat":
		q := mgl64.Quat{W: v[0], V: mgl64.Vec3{v[1], v[2], v[3]}}
		if toEditor {
			q = space.GameToEditorQuat(q)
		} else {
			q = space.EditorToGameQuat(q)
		}
		fmt.Fprintln(a.out, a.formatFloats(q.W, q.V[0], q.V[1], q.V[2]))

	case "mat3":
		m := mgl64.Mat3FromRows(
			mgl64.Vec3{v[0], v[1], v[2]},
			mgl64.Vec3{v[3], v[4], v[5]},
			mgl64.Vec3{v[6], v[7], v[8]},
		)
		if toEditor {
			m = space.GameToEditorMat3(m)
		} else {
			m = space.EditorToGameMat3(m)
		}
		a.printMat3(m)

	case "trs":
		trs := space.GameTRS{
			Translate: mgl64.Vec3{v[0], v[1], v[2]},
			Rotate:    mgl64.Quat{W: v[3], V: mgl64.Vec3{v[4], v[5], v[6]}}.Normalize(),
			Scale:     mgl64.Vec3{v[7], v[8], v[9]},
		}
		a.printMat4(space.GameTRSToEditorMatrix(trs))

	case "matrix":
		m := mgl64.Mat4FromRows(
			mgl64.Vec4{v[0], v[1], v[2], v[3]},
			mgl64.Vec4{v[4], v[5], v[6], v[7]},
			mgl64.Vec4{v[8], v[9], v[10], v[11]},
			mgl64.Vec4{v[12], v[13], v[14], v[15]},
		)
		trs := space.EditorMatrixToGameTRS(m)
		fmt.Fprintf(a.out, "translate %s\n", a.formatFloats(trs.Translate[:]...))
		fmt.Fprintf(a.out, "rotate    %s\n", a.formatFloats(trs.Rotate.W, trs.Rotate.V[0], trs.Rotate.V[1], trs.Rotate.V[2]))
		fmt.Fprintf(a.out, "scale     %s\n", a.formatFloats(trs.Scale[:]...))
	}
	return nil
}

func (a *app) cmdDummy(args []string) error {
	fs := newFlagSet("dummy", "[-from game|editor] <fx fy fz ux uy uz | ex ey ez>")
	from := fs.String("from", "game", "Input: game forward/up vectors or editor Euler angles")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *from {
	case "game":
		v, err := parseFloats(fs.Args(), 6)
		if err != nil {
			return err
		}
		forward := mgl64.Vec3{v[0], v[1], v[2]}
		up := mgl64.Vec3{v[3], v[4], v[5]}
		e := a.writeEuler(space.GameForwardUpToEditorEuler(forward, up))
		fmt.Fprintf(a.out, "euler %s\n", a.formatFloats(e[:]...))

	case "editor":
		v, err := parseFloats(fs.Args(), 3)
		if err != nil {
			return err
		}
		forward, up := space.EditorEulerToGameForwardUp(a.readEuler(mgl64.Vec3{v[0], v[1], v[2]}))
		fmt.Fprintf(a.out, "forward %s\n", a.formatFloats(forward[:]...))
		fmt.Fprintf(a.out, "up      %s\n", a.formatFloats(up[:]...))

	default:
		return fmt.Errorf("unknown input %q (want game or editor)", *from)
	}
	return nil
}
