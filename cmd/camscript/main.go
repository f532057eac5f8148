// camscript - replay camera commands against a bounding box
// Builds a camera controller over a scene box, applies each command route in order and prints the
// resulting pose, projection and matrices.
//
// Each argument is a route, optionally followed by ';'-separated inputs:
//
//	camera.orbit.left
//	camera.orbit;delta=0.1,-0.05
//	camera.roll;cursor=0.5,0.2;delta=0,0.1
//	camera.scale;cursor=0.3,0;scroll=0,-1
//	camera.view.isometric
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/projection"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	settingsPath := flag.String("settings", "", "Path to a TOML settings file with a [camera] table")
	boundsFlag := flag.String("bounds", "-0.5,-0.5,-0.5,0.5,0.5,0.5", "Scene bounds as `minX,minY,minZ,maxX,maxY,maxZ`")
	sizeFlag := flag.String("size", "1000x1000", "Output size in pixels as `WIDTHxHEIGHT`")
	ortho := flag.Bool("ortho", false, "Start with an orthographic projection")
	fit := flag.Bool("fit", true, "Fit the scene before applying commands")
	cli.ArgsHelp = "route[;cursor=x,y][;delta=x,y][;scroll=x,y] ..."
	cli.MinArgs = 0
	cli.MaxArgs = -1
	cli.Main()
	os.Exit(run(*settingsPath, *boundsFlag, *sizeFlag, *ortho, *fit, flag.Args()))
}

func run(settingsPath, boundsFlag, sizeFlag string, ortho, fit bool, routes []string) int {
	settings := camera.DefaultSettings()
	if settingsPath != "" {
		data, err := os.ReadFile(settingsPath)
		if err != nil {
			return log.FErrf("Unable to read settings %q: %v", settingsPath, err)
		}
		settings, err = camera.ParseSettings(data)
		if err != nil {
			return log.FErrf("Invalid settings %q: %v", settingsPath, err)
		}
	}

	bounds, err := parseBounds(boundsFlag)
	if err != nil {
		return log.FErrf("Invalid -bounds: %v", err)
	}
	width, height, err := parseSize(sizeFlag)
	if err != nil {
		return log.FErrf("Invalid -size: %v", err)
	}

	level := slog.LevelInfo
	if log.LogDebug() {
		level = slog.LevelDebug
	}
	options := []camera.CameraControllerOption{
		camera.WithSettings(settings),
		camera.WithBounds(bounds),
		camera.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
	}
	if ortho {
		lens, err := projection.NewOrthographic(
			projection.WithNearClip(settings.NearClip),
			projection.WithFarClip(settings.FarClip),
		)
		if err != nil {
			return log.FErrf("Unable to create orthographic projection: %v", err)
		}
		options = append(options, camera.WithCamera(camera.NewCamera(camera.WithProjection(lens))))
	}

	controller, err := camera.NewCameraController(options...)
	if err != nil {
		return log.FErrf("Unable to create camera controller: %v", err)
	}
	if err := controller.Resize(width, height); err != nil {
		return log.FErrf("Unable to size output: %v", err)
	}
	// start from the front view so the scene is in frame
	if _, err := controller.View(camera.ViewFront); err != nil {
		return log.FErrf("Unable to set initial view: %v", err)
	}
	if fit {
		controller.Fit()
	}

	for _, arg := range routes {
		spec, err := parseCommand(arg)
		if err != nil {
			return log.FErrf("Invalid command %q: %v", arg, err)
		}
		applied, err := controller.Dispatch(spec)
		if err != nil {
			return log.FErrf("Command %q failed: %v", arg, err)
		}
		log.Infof("%s applied=%t", spec.Route(), applied)
	}

	report(os.Stdout, controller, bounds)
	return 0
}

// parseCommand splits "route;key=x,y;..." into a CommandSpec.
func parseCommand(arg string) (camera.CommandSpec, error) {
	fields := strings.Split(arg, ";")
	spec, err := camera.ParseRoute(fields[0])
	if err != nil {
		return spec, err
	}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return spec, fmt.Errorf("input %q is not key=x,y", field)
		}
		v, err := parseVec2(value)
		if err != nil {
			return spec, fmt.Errorf("input %q: %w", field, err)
		}
		switch key {
		case "cursor":
			spec.CursorPosition = v
		case "delta":
			spec.CursorDelta = &v
		case "scroll":
			spec.Scroll = &v
		default:
			return spec, fmt.Errorf("unknown input %q", key)
		}
	}
	return spec, nil
}

func parseFloats(value string, n int) ([]float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", n, value)
	}
	out := make([]float64, n)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func parseVec2(value string) (mgl64.Vec2, error) {
	f, err := parseFloats(value, 2)
	if err != nil {
		return mgl64.Vec2{}, err
	}
	return mgl64.Vec2{f[0], f[1]}, nil
}

func parseBounds(value string) (common.AABB, error) {
	f, err := parseFloats(value, 6)
	if err != nil {
		return common.AABB{}, err
	}
	return common.NewAABB(mgl64.Vec3{f[0], f[1], f[2]}, mgl64.Vec3{f[3], f[4], f[5]}), nil
}

func parseSize(value string) (float64, float64, error) {
	w, h, ok := strings.Cut(value, "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT, got %q", value)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, 0, err
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func report(w io.Writer, controller camera.CameraController, bounds common.AABB) {
	c := controller.Camera()
	pose := c.Pose()
	right, up, backward := pose.Basis()
	lens := c.Projection()

	fmt.Fprintf(w, "position:   %s\n", formatVec3(c.Position()))
	fmt.Fprintf(w, "right:      %s\n", formatVec3(right))
	fmt.Fprintf(w, "up:         %s\n", formatVec3(up))
	fmt.Fprintf(w, "backward:   %s\n", formatVec3(backward))
	fmt.Fprintf(w, "target:     %s\n", formatVec3(controller.Target()))
	fmt.Fprintf(w, "orbit:      %s locked=%t\n", controller.OrbitType(), controller.Locked())
	switch p := lens.(type) {
	case *projection.Perspective:
		fmt.Fprintf(w, "projection: %s vfov=%.4f hfov=%.4f aspect=%.4f near=%g far=%g\n",
			p.Kind(), p.VerticalFov(), p.HorizontalFov(), p.Aspect(), p.Near(), p.Far())
	case *projection.Orthographic:
		fmt.Fprintf(w, "projection: %s width=%.4f height=%.4f aspect=%.4f near=%g far=%g\n",
			p.Kind(), p.Width(), p.Height(), p.Aspect(), p.Near(), p.Far())
	}
	fmt.Fprintf(w, "view:\n%s", c.ViewMatrix())
	fmt.Fprintf(w, "projection matrix:\n%s", c.ProjectionMatrix())
	ray := controller.CastRay(mgl64.Vec2{})
	fmt.Fprintf(w, "center ray: origin=%s direction=%s\n", formatVec3(ray.Origin), formatVec3(ray.Direction))

	frustum := c.Frustum()
	fmt.Fprintf(w, "in frustum: bounds=%t target=%t\n", frustum.IntersectsAABB(bounds), frustum.ContainsPoint(controller.Target()))
	uniform := camera.NewGPUCameraUniform(c)
	fmt.Fprintf(w, "uniform:    %d bytes %x\n", uniform.Size(), uniform.Marshal())
}

func formatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X(), v.Y(), v.Z())
}
