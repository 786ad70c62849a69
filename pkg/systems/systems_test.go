package systems

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/ecs"
	"github.com/decker502/planewar/pkg/entities"
	"github.com/hajimehoshi/ebiten/v2"
)

// recordingSounds 记录播放过的音效
type recordingSounds struct {
	played []string
}

func (r *recordingSounds) PlaySound(soundID string) bool {
	r.played = append(r.played, soundID)
	return true
}

func (r *recordingSounds) count(soundID string) int {
	n := 0
	for _, id := range r.played {
		if id == soundID {
			n++
		}
	}
	return n
}

type testWorld struct {
	em      *ecs.EntityManager
	factory *entities.Factory
	sounds  *recordingSounds
	cfg     *config.GameplayConfig
}

func newTestWorld(seed uint64) *testWorld {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameplayConfig()
	sounds := &recordingSounds{}
	sprites := entities.SpriteSet{
		Player: entities.SpriteAsset{Width: 50, Height: 50},
		Enemy:  entities.SpriteAsset{Width: 40, Height: 40},
		Bullet: entities.SpriteAsset{Width: 6, Height: 16},
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	return &testWorld{
		em:      em,
		factory: entities.NewFactory(em, cfg, sprites, rng, sounds),
		sounds:  sounds,
		cfg:     cfg,
	}
}

func TestSpawnInterval(t *testing.T) {
	w := newTestWorld(1)
	s := NewSpawnSystem(w.em, w.factory, w.cfg.Spawn)

	tests := []struct {
		score int
		want  int
	}{
		{score: 0, want: 100},
		{score: 9, want: 100},
		{score: 10, want: 99},
		{score: 500, want: 50},
		{score: 690, want: 31},
		{score: 700, want: 30},
		{score: 5000, want: 30},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("score=%d", tt.score), func(t *testing.T) {
			if got := s.Interval(tt.score); got != tt.want {
				t.Errorf("Expected interval %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSpawnEveryInterval(t *testing.T) {
	tests := []struct {
		score    int
		interval int
	}{
		{score: 0, interval: 100},
		{score: 500, interval: 50},
		{score: 700, interval: 30},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score=%d", tt.score), func(t *testing.T) {
			w := newTestWorld(3)
			s := NewSpawnSystem(w.em, w.factory, w.cfg.Spawn)

			var spawnTicks []int
			for tick := 1; tick <= tt.interval*3; tick++ {
				if s.Update(tt.score) != nil {
					spawnTicks = append(spawnTicks, tick)
				}
			}

			want := []int{tt.interval, tt.interval * 2, tt.interval * 3}
			if fmt.Sprint(spawnTicks) != fmt.Sprint(want) {
				t.Errorf("Expected spawns at %v, got %v", want, spawnTicks)
			}
			if w.em.Count(ecs.GroupEnemies) != 3 || w.em.Count(ecs.GroupAll) != 3 {
				t.Errorf("Expected 3 enemies in enemies and all, got %d/%d",
					w.em.Count(ecs.GroupEnemies), w.em.Count(ecs.GroupAll))
			}
			if s.Timer() != 0 {
				t.Errorf("Expected timer reset to 0, got %d", s.Timer())
			}
		})
	}
}

func TestPhysicsBulletHitsEnemy(t *testing.T) {
	w := newTestWorld(1)
	physics := NewPhysicsSystem(w.em, w.factory, w.sounds)

	player := w.factory.NewPlayer()
	w.em.Add(player, ecs.GroupAll)
	enemy := w.factory.NewEnemyAt(200, 300, 5)
	w.em.Add(enemy, ecs.GroupAll, ecs.GroupEnemies)
	bullet := w.factory.NewBullet(200, 310)
	w.em.Add(bullet, ecs.GroupAll, ecs.GroupBullets)

	result := physics.Update(player)

	if result.Kills != 1 || result.PlayerHit {
		t.Errorf("Expected 1 kill and no player hit, got %+v", result)
	}
	if w.sounds.count(config.SoundExplosion) != 1 {
		t.Errorf("Expected 1 explosion sound, got %d", w.sounds.count(config.SoundExplosion))
	}
	if w.em.IsAlive(enemy.ID()) || w.em.IsAlive(bullet.ID()) {
		t.Error("Bullet and enemy should both be removed")
	}
	if w.em.Count(ecs.GroupExplosions) != 0 {
		t.Error("Bullet kills should not spawn explosions")
	}
}

func TestPhysicsPlayerHit(t *testing.T) {
	w := newTestWorld(1)
	physics := NewPhysicsSystem(w.em, w.factory, w.sounds)

	player := w.factory.NewPlayer()
	w.em.Add(player, ecs.GroupAll)
	enemy := w.factory.NewEnemyAt(player.Position.X+10, player.Position.Y, 5)
	w.em.Add(enemy, ecs.GroupAll, ecs.GroupEnemies)

	result := physics.Update(player)

	if !result.PlayerHit || result.Explosion == nil {
		t.Fatalf("Expected player hit with explosion, got %+v", result)
	}
	if w.em.IsAlive(player.ID()) {
		t.Error("Player should be removed")
	}
	if !w.em.IsAlive(enemy.ID()) {
		t.Error("Enemy that hit the player should survive")
	}
	if w.em.Count(ecs.GroupExplosions) != 1 || !w.em.InGroup(result.Explosion.ID(), ecs.GroupAll) {
		t.Error("Explosion should be in explosions and all")
	}
	if result.Explosion.Position != player.Position {
		t.Errorf("Explosion should be centred on the player, got %+v", result.Explosion.Position)
	}

	// 玩家已被移除，再次检测不会重复触发
	again := physics.Update(player)
	if again.PlayerHit {
		t.Error("Destroyed player should not be hit twice")
	}
	if w.sounds.count(config.SoundExplosion) != 1 {
		t.Errorf("Expected 1 explosion sound, got %d", w.sounds.count(config.SoundExplosion))
	}
}

func TestPhysicsWithoutPlayer(t *testing.T) {
	w := newTestWorld(1)
	physics := NewPhysicsSystem(w.em, w.factory, nil)

	w.em.Add(w.factory.NewEnemyAt(100, 100, 5), ecs.GroupAll, ecs.GroupEnemies)
	w.em.Add(w.factory.NewBullet(100, 100), ecs.GroupAll, ecs.GroupBullets)

	result := physics.Update(nil)
	if result.Kills != 1 {
		t.Errorf("Expected bullets to keep scoring without a player, got %d", result.Kills)
	}
}

// drawCall 记录一次绘制调用
type drawCall struct {
	op    string
	text  string
	style FontStyle
	x, y  float64
	r     float64
	color color.Color
}

// recordingCanvas 记录所有绘制调用
type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) Clear(clr color.Color) {
	c.calls = append(c.calls, drawCall{op: "clear", color: clr})
}

func (c *recordingCanvas) DrawImage(img *ebiten.Image, cx, cy float64) {
	c.calls = append(c.calls, drawCall{op: "image", x: cx, y: cy})
}

func (c *recordingCanvas) FillCircle(cx, cy, r float64, clr color.Color) {
	c.calls = append(c.calls, drawCall{op: "circle", x: cx, y: cy, r: r, color: clr})
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	c.calls = append(c.calls, drawCall{op: "rect", x: x, y: y, color: clr})
}

func (c *recordingCanvas) DrawText(s string, style FontStyle, clr color.Color, x, y float64, align TextAlign) {
	c.calls = append(c.calls, drawCall{op: "text", text: s, style: style, x: x, y: y, color: clr})
}

func (c *recordingCanvas) ops(op string) []drawCall {
	var out []drawCall
	for _, call := range c.calls {
		if call.op == op {
			out = append(out, call)
		}
	}
	return out
}

func TestRenderWorld(t *testing.T) {
	w := newTestWorld(1)
	render := NewRenderSystem(w.em, w.cfg.GameOver)

	player := w.factory.NewPlayer()
	w.em.Add(player, ecs.GroupAll)
	w.em.Add(w.factory.NewEnemyAt(100, 50, 5), ecs.GroupAll, ecs.GroupEnemies)
	w.em.Add(w.factory.NewExplosion(300, 400), ecs.GroupAll, ecs.GroupExplosions)

	canvas := &recordingCanvas{}
	render.DrawWorld(canvas)

	if len(canvas.calls) == 0 || canvas.calls[0].op != "clear" {
		t.Fatal("First call should clear the screen")
	}
	images := canvas.ops("image")
	if len(images) != 2 {
		t.Fatalf("Expected 2 sprites, got %d", len(images))
	}
	if images[0].x != 350 || images[0].y != 700 {
		t.Errorf("Expected player drawn at its centre, got (%f,%f)", images[0].x, images[0].y)
	}

	// 首帧爆炸：外圈 + 内圈
	circles := canvas.ops("circle")
	if len(circles) != 2 {
		t.Fatalf("Expected 2 circles on the first explosion frame, got %d", len(circles))
	}
	if circles[0].r != 40 || circles[1].r != 30 {
		t.Errorf("Expected radii 40/30, got %f/%f", circles[0].r, circles[1].r)
	}
	if circles[0].x != 300 || circles[0].y != 400 {
		t.Errorf("Explosion should be drawn at its centre, got (%f,%f)", circles[0].x, circles[0].y)
	}
}

func TestRenderHUD(t *testing.T) {
	w := newTestWorld(1)
	render := NewRenderSystem(w.em, w.cfg.GameOver)
	canvas := &recordingCanvas{}

	render.DrawScore(canvas, 40)
	texts := canvas.ops("text")
	if len(texts) != 1 || texts[0].text != "Score: 40" || texts[0].x != 10 || texts[0].y != 10 {
		t.Fatalf("Unexpected score text: %+v", texts)
	}

	canvas = &recordingCanvas{}
	render.DrawGameOver(canvas, 120, 5)

	rects := canvas.ops("rect")
	if len(rects) != 1 {
		t.Fatalf("Expected 1 overlay, got %d", len(rects))
	}
	if _, _, _, a := rects[0].color.RGBA(); a>>8 != 150 {
		t.Errorf("Expected overlay alpha 150, got %d", a>>8)
	}

	texts = canvas.ops("text")
	want := []struct {
		text  string
		style FontStyle
		y     float64
	}{
		{text: "Game Over", style: FontTitle, y: 350},
		{text: "Final Score: 120", style: FontHUD, y: 450},
		{text: "Exiting... 5", style: FontHUD, y: 700},
	}
	if len(texts) != len(want) {
		t.Fatalf("Expected %d texts, got %d", len(want), len(texts))
	}
	for i, tt := range want {
		if texts[i].text != tt.text || texts[i].style != tt.style || texts[i].y != tt.y || texts[i].x != 350 {
			t.Errorf("Text %d: expected %q at (350,%f), got %q at (%f,%f)",
				i, tt.text, tt.y, texts[i].text, texts[i].x, texts[i].y)
		}
	}
}

func TestRenderCountdownLabel(t *testing.T) {
	w := newTestWorld(1)
	gameOver := w.cfg.GameOver
	gameOver.CountdownLabel = "退出游戏中..."
	render := NewRenderSystem(w.em, gameOver)
	canvas := &recordingCanvas{}

	render.DrawGameOver(canvas, 0, 3)

	texts := canvas.ops("text")
	if len(texts) != 3 {
		t.Fatalf("Expected 3 texts, got %d", len(texts))
	}
	if texts[2].text != "退出游戏中... 3" {
		t.Errorf("Expected countdown %q, got %q", "退出游戏中... 3", texts[2].text)
	}
}
