package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/motiontx/scene"
)

func linearTransition(duration float64) *scene.Transition {
	return &scene.Transition{
		ID: "t", From: "a", To: "b",
		Duration: duration, Easing: "linear", Animation: scene.AnimationAuto,
		Stagger: scene.Stagger{Mode: scene.StaggerNone},
	}
}

func TestSynthesizeSingleMovedProperty(t *testing.T) {
	from := testNode("box", "Box", 0)
	to := testNode("box", "Box", 0)
	to.X = 200

	tracks := Synthesize(Match([]*scene.Node{from}, []*scene.Node{to}), linearTransition(300), 256, 256)
	require.Len(t, tracks, 1)
	assert.Equal(t, Track{
		NodeID: "box", Property: PropX,
		From: 0, To: 200,
		Duration: 300, Delay: 0, Easing: "linear",
	}, tracks[0])
}

func TestSynthesizeIdenticalNodesEmitNothing(t *testing.T) {
	from := testNode("box", "Box", 0)
	to := testNode("box", "Box", 0)

	tracks := Synthesize(Match([]*scene.Node{from}, []*scene.Node{to}), linearTransition(300), 256, 256)
	assert.Empty(t, tracks)
}

func TestSynthesizeExit(t *testing.T) {
	alpha := testNode("alpha", "Alpha", 0)
	alpha.Y = 40
	beta := testNode("beta", "Beta", 1)

	pairings := Match([]*scene.Node{alpha, beta}, []*scene.Node{beta.Clone()})
	tracks := Synthesize(pairings, linearTransition(300), 256, 256)
	require.Len(t, tracks, 2)

	byProp := map[Property]Track{}
	for _, track := range tracks {
		byProp[track.Property] = track
	}
	opacity := byProp[PropOpacity]
	assert.Equal(t, "alpha", opacity.NodeID)
	assert.Equal(t, 1.0, opacity.From)
	assert.Equal(t, 0.0, opacity.To)
	assert.Equal(t, 300.0, opacity.Duration)

	sink := byProp[PropY]
	assert.Equal(t, "alpha", sink.NodeID)
	assert.Equal(t, 40.0, sink.From)
	assert.Equal(t, 28.0, sink.To)
}

func TestSynthesizeExitInstant(t *testing.T) {
	alpha := testNode("alpha", "Alpha", 0)

	tr := linearTransition(300)
	tr.Animation = scene.AnimationInstant
	tracks := Synthesize(Match([]*scene.Node{alpha}, nil), tr, 256, 256)
	require.Len(t, tracks, 1)
	assert.Equal(t, PropOpacity, tracks[0].Property)
	assert.Equal(t, 0.0, tracks[0].To)
	assert.Equal(t, 0.0, tracks[0].Duration)
	assert.Equal(t, 0.0, tracks[0].Delay)
}

func TestSynthesizeEnterInstantEmitsNothing(t *testing.T) {
	arriving := testNode("new", "New", 0)

	tr := linearTransition(300)
	tr.Animation = scene.AnimationInstant
	tracks := Synthesize(Match(nil, []*scene.Node{arriving}), tr, 256, 256)
	assert.Empty(t, tracks)
}

func TestSynthesizeEnter(t *testing.T) {
	arriving := testNode("new", "New", 0)
	arriving.Y = 100

	tracks := Synthesize(Match(nil, []*scene.Node{arriving}), linearTransition(300), 256, 256)
	require.Len(t, tracks, 2)

	byProp := map[Property]Track{}
	for _, track := range tracks {
		byProp[track.Property] = track
	}
	assert.Equal(t, 0.0, byProp[PropOpacity].From)
	assert.Equal(t, 1.0, byProp[PropOpacity].To)
	assert.Equal(t, 112.0, byProp[PropY].From)
	assert.Equal(t, 100.0, byProp[PropY].To)
}

func TestSynthesizeDissolve(t *testing.T) {
	from := testNode("a1", "Box", 0)
	from.X = 10
	to := testNode("b1", "Box", 0)
	to.X = 400

	tr := linearTransition(300)
	tr.Animation = scene.AnimationDissolve
	tracks := Synthesize(Match([]*scene.Node{from}, []*scene.Node{to}), tr, 256, 256)
	require.Len(t, tracks, 2)

	// Only opacity animates: the from-identity fades out while the
	// to-identity fades in. Geometry never moves.
	assert.Equal(t, Track{NodeID: "a1", Property: PropOpacity, From: 1, To: 0, Duration: 300, Easing: "linear"}, tracks[0])
	assert.Equal(t, Track{NodeID: "b1", Property: PropOpacity, From: 0, To: 1, Duration: 300, Easing: "linear"}, tracks[1])
}

func TestSynthesizeStaleDuplicateSuppression(t *testing.T) {
	from := testNode("a1", "Box", 0)
	to := testNode("b1", "Box", 0)
	to.X = 50

	tracks := Synthesize(Match([]*scene.Node{from}, []*scene.Node{to}), linearTransition(300), 256, 256)
	require.Len(t, tracks, 2)

	var suppression *Track
	for i := range tracks {
		if tracks[i].NodeID == "a1" {
			suppression = &tracks[i]
		}
	}
	require.NotNil(t, suppression, "stale from-identity must be hidden")
	assert.Equal(t, PropOpacity, suppression.Property)
	assert.Equal(t, 0.0, suppression.To)
	assert.Equal(t, 0.0, suppression.Duration)
	assert.Equal(t, 0.0, suppression.Delay)
	assert.Equal(t, "linear", suppression.Easing)
}

func TestSynthesizeOrderStagger(t *testing.T) {
	nodes := []*scene.Node{
		testNode("n1", "One", 0),
		testNode("n2", "Two", 1),
		testNode("n3", "Three", 2),
	}

	tr := linearTransition(300)
	tr.Stagger = scene.Stagger{Mode: scene.StaggerOrder, Amount: 100}
	tracks := Synthesize(Match(nil, nodes), tr, 256, 256)

	delays := map[string]float64{}
	for _, track := range tracks {
		if track.Property == PropOpacity {
			delays[track.NodeID] = track.Delay
		}
	}
	assert.Equal(t, map[string]float64{"n1": 0, "n2": 100, "n3": 200}, delays)
}

func TestSynthesizeDistanceStagger(t *testing.T) {
	near := testNode("near", "Near", 0)
	near.X, near.Y = 256, 256 // center is at the node origin; width 0
	far := testNode("far", "Far", 1)
	far.X, far.Y = 256, 56 // 200 units above center

	tr := linearTransition(300)
	tr.Stagger = scene.Stagger{Mode: scene.StaggerDistance, Amount: 50}
	tracks := Synthesize(Match(nil, []*scene.Node{near, far}), tr, 256, 256)

	delays := map[string]float64{}
	for _, track := range tracks {
		if track.Property == PropOpacity {
			delays[track.NodeID] = track.Delay
		}
	}
	assert.InDelta(t, 0, delays["near"], 1e-9)
	assert.InDelta(t, 200.0/100*50, delays["far"], 1e-9)
}

func TestSynthesizeEasingOverride(t *testing.T) {
	from := testNode("box", "Box", 0)
	to := testNode("box", "Box", 0)
	to.X = 100
	to.Rotation = 90

	tr := linearTransition(300)
	tr.Overrides = []scene.EasingOverride{{NodeID: "box", Property: "rotation", Easing: "spring"}}
	tracks := Synthesize(Match([]*scene.Node{from}, []*scene.Node{to}), tr, 256, 256)

	byProp := map[Property]Track{}
	for _, track := range tracks {
		byProp[track.Property] = track
	}
	assert.Equal(t, "linear", byProp[PropX].Easing)
	assert.Equal(t, "spring", byProp[PropRotation].Easing)
}

func TestSynthesizeLinearModeForcesLinearEasing(t *testing.T) {
	from := testNode("box", "Box", 0)
	to := testNode("box", "Box", 0)
	to.X = 100

	tr := linearTransition(300)
	tr.Easing = "bounce"
	tr.Animation = scene.AnimationLinear
	tracks := Synthesize(Match([]*scene.Node{from}, []*scene.Node{to}), tr, 256, 256)
	require.Len(t, tracks, 1)
	assert.Equal(t, "linear", tracks[0].Easing)
}

func TestSynthesizeLineLength(t *testing.T) {
	from := testNode("line", "Line", 0)
	from.Type = scene.NodePolyline
	from.Points = []scene.Point{{X: 0, Y: 0}, {X: 30, Y: 40}}
	to := from.Clone()
	to.Points = []scene.Point{{X: 0, Y: 0}, {X: 60, Y: 80}}

	tracks := Synthesize(Match([]*scene.Node{from}, []*scene.Node{to}), linearTransition(300), 256, 256)
	require.Len(t, tracks, 1)
	assert.Equal(t, PropLineLength, tracks[0].Property)
	assert.InDelta(t, 50, tracks[0].From, 1e-9)
	assert.InDelta(t, 100, tracks[0].To, 1e-9)
	assert.True(t, math.Abs(tracks[0].From-tracks[0].To) > 0)
}
