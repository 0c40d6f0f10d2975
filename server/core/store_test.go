package core

import (
	"fmt"
	"testing"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
)

func TestStoreJoinAlternatesTeams(t *testing.T) {
	s := NewStore()
	want := []messages.Team{messages.TeamBlue, messages.TeamRed, messages.TeamBlue, messages.TeamRed, messages.TeamBlue}
	for i, team := range want {
		p := s.Join(fmt.Sprintf("p%d", i), "n")
		if p.Team != team {
			t.Fatalf("join %d team = %s, want %s", i, p.Team, team)
		}
		if s.Len() != i+1 || len(s.Snapshot()) != i+1 {
			t.Fatalf("after %d joins Len = %d, snapshot = %d", i+1, s.Len(), len(s.Snapshot()))
		}
	}
}

func TestStoreJoinDefaults(t *testing.T) {
	s := NewStore()
	p := s.Join("a", "Ann")
	want := messages.Player{
		ID: "a", Nickname: "Ann", Position: gamemath.Vec3{Y: 1},
		HP: 100, Team: messages.TeamBlue,
	}
	if p != want {
		t.Fatalf("Join = %+v, want %+v", p, want)
	}
}

func TestStoreRejoinResetsWithoutDuplicating(t *testing.T) {
	s := NewStore()
	s.Join("a", "Ann")
	s.Join("b", "Bob")
	s.Update("a", gamemath.Vec3{X: 5}, 1)
	s.Hit("a", "b", 30)

	p := s.Join("a", "Ann2")
	if s.Len() != 2 {
		t.Fatalf("Len = %d after re-join, want 2", s.Len())
	}
	if p.HP != 100 || p.Score != 0 || p.Position != (gamemath.Vec3{Y: 1}) || p.Nickname != "Ann2" {
		t.Fatalf("re-join did not reset record: %+v", p)
	}
	// Two players present before the re-join write, so the team is blue.
	if p.Team != messages.TeamBlue {
		t.Fatalf("re-join team = %s", p.Team)
	}
	if b, _ := s.Get("b"); b.HP != 100 {
		t.Fatalf("re-join touched another record: %+v", b)
	}
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore()
	s.Join("a", "Ann")
	pos := gamemath.Vec3{X: 1, Y: 1, Z: 1}
	if !s.Update("a", pos, 0.5) {
		t.Fatalf("Update known id returned false")
	}
	first := s.Snapshot()
	s.Update("a", pos, 0.5)
	second := s.Snapshot()
	if first["a"] != second["a"] {
		t.Fatalf("repeated update changed state: %+v vs %+v", first["a"], second["a"])
	}
	if got := second["a"]; got.Position != pos || got.Rotation != 0.5 || got.HP != 100 {
		t.Fatalf("Update wrote wrong fields: %+v", got)
	}
	if s.Update("ghost", pos, 0) {
		t.Fatalf("Update unknown id returned true")
	}
}

func TestStoreHit(t *testing.T) {
	tests := []struct {
		name       string
		hp, damage int
		wantHP     int
		wantKilled bool
	}{
		{"partial", 100, 10, 90, false},
		{"exact kill", 10, 10, 0, true},
		{"overkill clamps", 5, 50, 0, true},
		{"zero damage", 100, 0, 100, false},
		{"negative damage caps at max", 95, -20, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Join("src", "S")
			s.Join("dst", "D")
			if tt.hp != 100 {
				s.Hit("dst", "nobody", 100-tt.hp)
			}

			res, ok := s.Hit("dst", "src", tt.damage)
			if !ok {
				t.Fatalf("Hit on alive target dropped")
			}
			dst, _ := s.Get("dst")
			src, _ := s.Get("src")
			if dst.HP != tt.wantHP {
				t.Fatalf("hp = %d, want %d", dst.HP, tt.wantHP)
			}
			if res.Applied != tt.hp-tt.wantHP {
				t.Fatalf("applied = %d, want %d", res.Applied, tt.hp-tt.wantHP)
			}
			if dst.IsDead != tt.wantKilled || res.Killed != tt.wantKilled {
				t.Fatalf("dead = %v killed = %v, want %v", dst.IsDead, res.Killed, tt.wantKilled)
			}
			wantScore := 0
			if tt.wantKilled {
				wantScore = 1
			}
			if src.Score != wantScore {
				t.Fatalf("source score = %d, want %d", src.Score, wantScore)
			}
		})
	}
}

func TestStoreHitOnDeadOrUnknownIsNoop(t *testing.T) {
	s := NewStore()
	s.Join("a", "A")
	s.Join("b", "B")
	if _, ok := s.Hit("b", "a", 100); !ok {
		t.Fatalf("killing hit dropped")
	}
	before := s.Snapshot()
	if _, ok := s.Hit("b", "a", 10); ok {
		t.Fatalf("hit on dead target applied")
	}
	if _, ok := s.Hit("ghost", "a", 10); ok {
		t.Fatalf("hit on unknown target applied")
	}
	after := s.Snapshot()
	if before["a"] != after["a"] || before["b"] != after["b"] {
		t.Fatalf("no-op hits changed state")
	}
	if after["a"].Score != 1 {
		t.Fatalf("score = %d, want 1", after["a"].Score)
	}
}

func TestStoreKillWithUnknownSource(t *testing.T) {
	s := NewStore()
	s.Join("a", "A")
	res, ok := s.Hit("a", "ghost", 200)
	if !ok || !res.Killed {
		t.Fatalf("Hit = %+v, %v", res, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("unknown source created a record")
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.Join("a", "A")
	s.Join("b", "B")
	if !s.Remove("a") {
		t.Fatalf("Remove known id returned false")
	}
	if s.Remove("a") {
		t.Fatalf("second Remove returned true")
	}
	snap := s.Snapshot()
	if _, ok := snap["a"]; ok || len(snap) != 1 {
		t.Fatalf("snapshot after remove = %v", snap)
	}
	if b := snap["b"]; b.HP != 100 || b.ID != "b" {
		t.Fatalf("remove touched another record: %+v", b)
	}
}

func TestStorePlayersOrderedByJoin(t *testing.T) {
	s := NewStore()
	s.Join("a", "A")
	s.Join("b", "B")
	s.Join("c", "C")
	s.Join("a", "A")
	got := s.Players()
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if ids[0] != "b" || ids[1] != "c" || ids[2] != "a" {
		t.Fatalf("Players order = %v", ids)
	}
}
