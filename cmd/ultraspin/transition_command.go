package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justindarc/ultraspin/transition"
)

func newTransitionCommand(ctx *commandContext) *cobra.Command {
	var spec transition.Spec
	var geom transition.Geometry
	var width, height int

	cmd := &cobra.Command{
		Use:   "transition",
		Short: "Compile a transition and print its keyframes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			screen := transition.Screen{Width: float64(cfg.Display.Width), Height: float64(cfg.Display.Height)}
			if width > 0 && height > 0 {
				screen = transition.Screen{Width: float64(width), Height: float64(height)}
			}
			base := transition.Transform{transition.Rotate(geom.Rotation)}
			plan, err := ctx.compiler().Compile(spec, geom, base, screen)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), describePlan(plan))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&spec.Start, "start", transition.StartNone, "Start edge: top, right, bottom, left, center or none")
	flags.StringVar(&spec.Type, "type", "", "Transition type")
	flags.Float64Var(&spec.Delay, "delay", 0, "Delay in seconds")
	flags.Float64Var(&spec.Time, "time", 1, "Duration in seconds")
	flags.Float64Var(&geom.X, "x", transition.RefWidth/2, "Component centre x, reference units")
	flags.Float64Var(&geom.Y, "y", transition.RefHeight/2, "Component centre y, reference units")
	flags.Float64Var(&geom.W, "w", 100, "Component width, reference units")
	flags.Float64Var(&geom.H, "h", 100, "Component height, reference units")
	flags.Float64Var(&geom.Rotation, "r", 0, "Component rotation in degrees")
	flags.IntVar(&width, "width", 0, "Screen width in pixels (default from config)")
	flags.IntVar(&height, "height", 0, "Screen height in pixels (default from config)")
	return cmd
}

func describePlan(plan transition.Plan) string {
	t := plan.Timing
	timing := renderTable(
		[]string{"Delay", "Duration", "Easing", "Iterations", "Direction", "Fill"},
		[][]string{{
			t.Delay.String(),
			t.Duration.String(),
			t.Easing.Name,
			formatIterations(t.Iterations),
			t.Direction.String(),
			yesNo(t.FillForwards),
		}},
		nil,
	)

	rows := make([][]string, len(plan.Keyframes))
	for i, k := range plan.Keyframes {
		rows[i] = []string{strconv.FormatFloat(plan.Offsets[i], 'f', 3, 64), k.String()}
	}
	frames := renderTable([]string{"Offset", "Keyframe"}, rows, []columnAlignment{alignRight})

	out := timing + "\n" + frames + "\n"
	if len(plan.Aux) > 0 {
		aux := make([][]string, len(plan.Aux))
		for i, a := range plan.Aux {
			aux[i] = []string{a.Kind.String(), a.Delay.String(), a.Duration.String()}
		}
		out += renderTable([]string{"Effect", "Delay", "Duration"}, aux, nil) + "\n"
	}
	if p := plan.Placement; p != nil {
		out += fmt.Sprintf("Placement: left=%.1f top=%.1f\n", p.Left, p.Top)
	}
	return out
}

func formatIterations(n float64) string {
	if math.IsInf(n, 1) {
		return "infinite"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
