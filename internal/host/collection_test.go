package host

import "testing"

func TestCollection(t *testing.T) {
	t.Run("play control toggles the marker", func(t *testing.T) {
		var seen []bool
		c := NewCollection([]ItemData{
			{Label: "first", OnPlay: func(playing bool) { seen = append(seen, playing) }},
		})

		item, ok := c.ItemAt(0)
		if !ok {
			t.Fatal("expected item at index 0")
		}

		play, ok := item.PlayControl()
		if !ok {
			t.Fatal("expected a play control")
		}

		play.Trigger()
		if !item.Playing() {
			t.Error("expected item to be marked playing")
		}
		play.Trigger()
		if item.Playing() {
			t.Error("expected item to be idle after second trigger")
		}

		if len(seen) != 2 || !seen[0] || seen[1] {
			t.Errorf("unexpected play callbacks: %v", seen)
		}
	})

	t.Run("missing affordances", func(t *testing.T) {
		c := NewCollection([]ItemData{
			{Label: "no play", NoPlay: true, BuyURL: "https://store.example"},
			{Label: "no buy url"},
		})

		first, _ := c.ItemAt(0)
		if _, ok := first.PlayControl(); ok {
			t.Error("expected no play control")
		}
		if _, ok := first.BuyControl(); !ok {
			t.Error("expected a buy control")
		}

		second, _ := c.ItemAt(1)
		if _, ok := second.BuyControl(); ok {
			t.Error("expected no buy control without a url")
		}
	})

	t.Run("Append grows the listing", func(t *testing.T) {
		c := NewCollection([]ItemData{{Label: "a"}})
		c.Append(ItemData{Label: "b"}, ItemData{Label: "c"})

		if c.ItemCount() != 3 {
			t.Fatalf("expected 3 items, got %d", c.ItemCount())
		}
		if got := len(c.Items()); got != 3 {
			t.Errorf("expected 3 items from Items(), got %d", got)
		}
	})

	t.Run("show more is hidden until enabled", func(t *testing.T) {
		fired := 0
		c := NewCollection(nil)
		c.OnShowMore = func() { fired++ }

		if _, ok := c.ShowMore(); ok {
			t.Error("expected no show-more control")
		}

		c.SetHasMore(true)
		control, ok := c.ShowMore()
		if !ok {
			t.Fatal("expected a show-more control")
		}
		control.Trigger()
		if fired != 1 {
			t.Errorf("expected hook to fire once, got %d", fired)
		}
	})

	t.Run("scroll position round trips", func(t *testing.T) {
		c := NewCollection(nil)

		if !c.AtTop() {
			t.Error("expected a fresh page to start at the top")
		}
		c.ScrollToBottom()
		if c.AtTop() {
			t.Error("expected page to be at the bottom")
		}
		c.ScrollToTop()
		if !c.AtTop() {
			t.Error("expected page to return to the top")
		}
	})

	t.Run("audio is optional", func(t *testing.T) {
		c := NewCollection(nil)

		if _, ok := c.Audio(); ok {
			t.Error("expected no audio element")
		}
		c.SetAudio(NewSimAudio(120))
		if _, ok := c.Audio(); !ok {
			t.Error("expected an audio element")
		}
	})
}

func TestSimAudio(t *testing.T) {
	audio := NewSimAudio(120)

	if audio.ReadyState() >= ReadyToSeek {
		t.Error("expected a fresh element to be unbuffered")
	}

	audio.SetReadyState(ReadyToSeek)
	audio.SetPosition(60)
	if audio.Position() != 60 {
		t.Errorf("expected position 60, got %v", audio.Position())
	}

	audio.Advance(90)
	if audio.Position() != 120 {
		t.Errorf("expected position clamped to duration, got %v", audio.Position())
	}

	audio.Reset()
	if audio.Position() != 0 || audio.ReadyState() != 0 {
		t.Errorf("expected reset state, got position %v ready %d", audio.Position(), audio.ReadyState())
	}
}
