package solver

import (
	"testing"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

func TestBodySleepsAfterRestingLongEnough(t *testing.T) {
	b := NewDynamicBody(mathf.Identity(), FiniteMass(1, 1), collider.Material{})
	b.Velocity = mathf.Vec2{0.001, 0}

	for i := 0; i < 29; i++ {
		b.updateSleep(1.0/60.0, 0.01, 0.5)
		if b.Sleeping {
			t.Fatalf("body slept too early, at tick %d", i)
		}
	}
	b.updateSleep(1.0/60.0, 0.01, 0.5)
	if !b.Sleeping {
		t.Fatalf("body should be asleep after resting past the time threshold")
	}
	if b.Velocity != mathf.Zero2() {
		t.Fatalf("sleeping should zero velocity, got %v", b.Velocity)
	}
}

func TestBodyWakesWhenPerturbed(t *testing.T) {
	b := NewDynamicBody(mathf.Identity(), FiniteMass(1, 1), collider.Material{})
	for i := 0; i < 31; i++ {
		b.updateSleep(1.0/60.0, 0.01, 0.5)
	}
	if !b.Sleeping {
		t.Fatalf("setup: expected body to be asleep")
	}
	b.Wake()
	if b.Sleeping {
		t.Fatalf("Wake should clear the sleeping flag")
	}
}

func TestStaticAndKinematicBodiesAreAnchors(t *testing.T) {
	if !NewStaticBody(mathf.Identity()).IsAnchor() {
		t.Fatalf("static bodies should be anchors")
	}
	if !NewKinematicBody(mathf.Identity()).IsAnchor() {
		t.Fatalf("kinematic bodies should be anchors")
	}
	if NewDynamicBody(mathf.Identity(), FiniteMass(1, 1), collider.Material{}).IsAnchor() {
		t.Fatalf("dynamic bodies should not be anchors")
	}
}
