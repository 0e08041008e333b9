// boundtool is a CLI utility for inspecting and testing bounds files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/rotabounds/internal/logger"
	"github.com/Faultbox/rotabounds/pkg/bounds"
	"github.com/Faultbox/rotabounds/pkg/encoding"
	"github.com/Faultbox/rotabounds/pkg/formats"
	"github.com/Faultbox/rotabounds/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	level := "warn"
	if os.Getenv("BOUNDTOOL_DEBUG") != "" {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "check":
		cmdCheck(args)
	case "point", "pt":
		cmdPoint(args)
	case "collide":
		cmdCollide(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`boundtool - collision bounds utility

Usage:
  boundtool <command> [options]

Commands:
  info <file.bounds>                      Show modes, frames and polygons
  check <file.bounds>...                  Validate bounds files
  point [options] <file.bounds> <x> <y>   Test a point against posed bounds
  collide [options] <a.bounds> <b.bounds> Test two posed objects

A bounds argument of "rect" uses the object's plain rectangle.

Pose options (point, collide; "a-" and "b-" prefixed for collide):
  -pose x,y,w,h[,angle]   Position, size and angle in degrees
  -pivot fx,fy            Rotation origin as a fraction of the size (default 0.5,0.5)
  -frame key              Animation frame to activate
  -mode m                 Mode for "rect" bounds: membership or segment
  -encoding name          Text encoding of the bounds file, e.g. euc-kr

Examples:
  boundtool info coin.bounds
  boundtool point -pose 100,100,50,50,90 coin.bounds 125 125
  boundtool collide -a-pose 0,0,40,40 -b-pose 30,30,40,40,45 rect rect

Set BOUNDTOOL_DEBUG=1 for debug logging.`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	enc := fs.String("encoding", "", "Text encoding of the file (default utf-8)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: boundtool info [-encoding name] <file.bounds>")
		os.Exit(1)
	}

	f, err := loadBounds(fs.Arg(0), *enc)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("File:   %s\n", fs.Arg(0))
	fmt.Printf("Mode:   %s\n", f.Mode)
	fmt.Printf("Frames: %d\n", len(f.Frames))
	for _, key := range f.Keys() {
		def := f.Frames[key]
		name := key
		if key == bounds.DefaultFrame {
			name = "(single)"
		}
		fmt.Printf("\n[%s] %d polygon(s)\n", name, len(def.Polygons))
		for i, p := range def.Polygons {
			var flags []string
			if p.Hidden {
				flags = append(flags, "hidden")
			}
			if p.Open() {
				flags = append(flags, "open")
			}
			if cps := p.Checkpoints(); cps != nil {
				flags = append(flags, fmt.Sprintf("checkpoints=%v", cps))
			}
			if f.Mode == bounds.ModeMembership {
				flags = append(flags, "winding="+winding(p.Hints))
			}
			fmt.Printf("  %2d  %3d points  %s\n", i, len(p.Hints), strings.Join(flags, " "))
		}
	}
}

func winding(hints []math.Vec2) string {
	if bounds.Winding(hints) {
		return "cw"
	}
	return "ccw"
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	enc := fs.String("encoding", "", "Text encoding of the files (default utf-8)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: boundtool check [-encoding name] <file.bounds>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range fs.Args() {
		f, err := loadBounds(path, *enc)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("ok    %s (%s, %d frame(s))\n", path, f.Mode, len(f.Frames))
	}
	if failed > 0 {
		logger.Warn("bounds check failed", zap.Int("failed", failed), zap.Int("total", fs.NArg()))
		os.Exit(1)
	}
}

func cmdPoint(args []string) {
	fs := flag.NewFlagSet("point", flag.ExitOnError)
	opts := addPoseFlags(fs, "")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: boundtool point [options] <file.bounds> <x> <y>")
		os.Exit(1)
	}
	p, err := parseVec(fs.Arg(1) + "," + fs.Arg(2))
	if err != nil {
		fail("point: %v", err)
	}

	frame, err := opts.posed(fs.Arg(0))
	if err != nil {
		fail("%v", err)
	}

	if i, ok := frame.PointInBounds(p); ok {
		fmt.Printf("hit   polygon %d\n", i)
		return
	}
	fmt.Println("miss")
}

func cmdCollide(args []string) {
	fs := flag.NewFlagSet("collide", flag.ExitOnError)
	aOpts := addPoseFlags(fs, "a-")
	bOpts := addPoseFlags(fs, "b-")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: boundtool collide [options] <a.bounds> <b.bounds>")
		os.Exit(1)
	}

	a, err := aOpts.posed(fs.Arg(0))
	if err != nil {
		fail("a: %v", err)
	}
	b, err := bOpts.posed(fs.Arg(1))
	if err != nil {
		fail("b: %v", err)
	}

	if hit, ok := a.CollideWith(b); ok {
		printHit("a", "b", hit)
		return
	}
	if hit, ok := b.CollideWith(a); ok {
		printHit("b", "a", hit)
		return
	}
	fmt.Println("miss")
}

func printHit(self, other string, hit bounds.Hit) {
	if hit.Edge < 0 {
		fmt.Printf("hit   %s polygon %d <- %s polygon %d\n", self, hit.Polygon, other, hit.OtherPolygon)
		return
	}
	fmt.Printf("hit   %s polygon %d edge %d x %s polygon %d edge %d\n",
		self, hit.Polygon, hit.Edge, other, hit.OtherPolygon, hit.OtherEdge)
}

// poseOptions holds one object's pose flags.
type poseOptions struct {
	pose     *string
	pivot    *string
	frame    *string
	mode     *string
	encoding *string
}

func addPoseFlags(fs *flag.FlagSet, prefix string) *poseOptions {
	return &poseOptions{
		pose:     fs.String(prefix+"pose", "0,0,1,1", "Pose as x,y,w,h[,angle]"),
		pivot:    fs.String(prefix+"pivot", "0.5,0.5", "Rotation origin as a fraction of the size"),
		frame:    fs.String(prefix+"frame", "", "Animation frame key"),
		mode:     fs.String(prefix+"mode", "membership", "Mode for rect bounds"),
		encoding: fs.String(prefix+"encoding", "", "Text encoding of the bounds file"),
	}
}

// posed loads source ("rect" or a bounds file), activates the requested
// frame and applies the pose.
func (o *poseOptions) posed(source string) (*bounds.Frame, error) {
	pose, err := parsePose(*o.pose)
	if err != nil {
		return nil, err
	}
	pivot, err := parseVec(*o.pivot)
	if err != nil {
		return nil, fmt.Errorf("pivot: %w", err)
	}
	pose.Origin = bounds.PivotOrigin(pose.Pos, pose.Size, pivot)

	obj, err := loadObject(source, *o.mode, *o.encoding)
	if err != nil {
		return nil, err
	}

	var frame *bounds.Frame
	if *o.frame != "" {
		frame, err = obj.Activate(formats.FrameKey(*o.frame))
		if err != nil {
			return nil, fmt.Errorf("%w (have %v)", err, obj.Keys())
		}
	} else if frame, err = obj.Active(); err != nil {
		return nil, err
	}
	frame.Update(pose)
	return frame, nil
}

// loadBounds reads a bounds file saved in the named text encoding.
func loadBounds(path, enc string) (*formats.BoundsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = encoding.Decode(data, enc)
	if err != nil {
		return nil, err
	}
	f, err := formats.ParseBounds(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func loadObject(source, mode, enc string) (*bounds.Object, error) {
	log := logger.Named("bounds").With(zap.String("source", source))
	if source == "rect" {
		m, err := bounds.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		obj, _, err := bounds.NewSingle(bounds.DefaultDefinition(m), bounds.WithMode(m), bounds.WithLogger(log))
		return obj, err
	}

	f, err := loadBounds(source, enc)
	if err != nil {
		return nil, err
	}
	return f.NewObject(bounds.WithLogger(log))
}

var errPoseFormat = errors.New("pose must be x,y,w,h[,angle]")

func parsePose(s string) (bounds.Pose, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return bounds.Pose{}, err
	}
	if len(vals) != 4 && len(vals) != 5 {
		return bounds.Pose{}, fmt.Errorf("%w, got %q", errPoseFormat, s)
	}
	p := bounds.Pose{
		Pos:  math.Vec2{X: vals[0], Y: vals[1]},
		Size: math.Vec2{X: vals[2], Y: vals[3]},
	}
	if len(vals) == 5 {
		p.Angle = math.NormalizeDegrees(vals[4])
	}
	return p, nil
}

func parseVec(s string) (math.Vec2, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return math.Vec2{}, err
	}
	if len(vals) != 2 {
		return math.Vec2{}, fmt.Errorf("want x,y, got %q", s)
	}
	return math.Vec2{X: vals[0], Y: vals[1]}, nil
}
