package ecs

import (
	"testing"

	"github.com/decker502/planewar/pkg/components"
)

// testEntity 测试用实体：固定碰撞盒，按 ttl 计数过期
type testEntity struct {
	id      EntityID
	box     components.AABB
	ttl     int
	updates int
}

func (e *testEntity) ID() EntityID { return e.id }

func (e *testEntity) Update() bool {
	e.updates++
	if e.ttl == 0 {
		return false
	}
	e.ttl--
	return e.ttl == 0
}

func (e *testEntity) Bounds() components.AABB { return e.box }

func (e *testEntity) Visual() components.Visual { return components.Visual{} }

func newTestEntity(em *EntityManager, x, y float64) *testEntity {
	col := components.CollisionComponent{Width: 10, Height: 10}
	return &testEntity{
		id:  em.CreateEntity(),
		box: col.BoundsAt(components.PositionComponent{X: x, Y: y}),
	}
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetEntities(t *testing.T) {
	em := NewEntityManager()
	a := newTestEntity(em, 0, 0)
	b := newTestEntity(em, 100, 0)
	c := newTestEntity(em, 200, 0)

	em.Add(a, GroupAll, GroupEnemies)
	em.Add(b, GroupAll, GroupBullets)
	em.Add(c, GroupAll, GroupEnemies)

	all := em.GetEntities(GroupAll)
	if len(all) != 3 {
		t.Fatalf("Expected 3 entities in all, got %d", len(all))
	}
	// 遍历顺序与加入顺序一致
	if all[0] != a || all[1] != b || all[2] != c {
		t.Error("GetEntities should preserve insertion order")
	}

	if em.Count(GroupEnemies) != 2 {
		t.Errorf("Expected 2 enemies, got %d", em.Count(GroupEnemies))
	}
	if !em.InGroup(b.ID(), GroupBullets) || em.InGroup(b.ID(), GroupEnemies) {
		t.Error("Entity b should only be in all and bullets")
	}
}

func TestAddTwiceDoesNotDuplicate(t *testing.T) {
	em := NewEntityManager()
	a := newTestEntity(em, 0, 0)

	em.Add(a, GroupAll)
	em.Add(a, GroupAll, GroupAll)

	if em.Count(GroupAll) != 1 {
		t.Errorf("Expected 1 entity, got %d", em.Count(GroupAll))
	}
}

func TestAddAfterDestroy(t *testing.T) {
	em := NewEntityManager()
	a := newTestEntity(em, 0, 0)
	b := newTestEntity(em, 50, 0)
	em.Add(a, GroupAll, GroupEnemies)
	em.Add(b, GroupAll)

	em.DestroyEntity(a.ID())
	em.Add(a, GroupAll, GroupEnemies)

	if em.Count(GroupAll) != 2 || em.Count(GroupEnemies) != 1 {
		t.Errorf("Expected all=2 enemies=1, got all=%d enemies=%d",
			em.Count(GroupAll), em.Count(GroupEnemies))
	}
	all := em.GetEntities(GroupAll)
	if len(all) != 2 {
		t.Fatalf("Expected 2 entities in snapshot, got %d", len(all))
	}
	// 重新加入的实体排在末尾
	if all[0] != b || all[1] != a {
		t.Error("Re-added entity should appear once, after b")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	a := newTestEntity(em, 0, 0)
	b := newTestEntity(em, 50, 0)
	em.Add(a, GroupAll, GroupEnemies)
	em.Add(b, GroupAll, GroupEnemies)

	if !em.DestroyEntity(a.ID()) {
		t.Error("First destroy should succeed")
	}
	// 重复删除返回 false
	if em.DestroyEntity(a.ID()) {
		t.Error("Second destroy should report entity already gone")
	}

	if em.IsAlive(a.ID()) {
		t.Error("Destroyed entity should not be alive")
	}
	if em.Count(GroupAll) != 1 || em.Count(GroupEnemies) != 1 {
		t.Errorf("Expected 1 entity per group, got all=%d enemies=%d",
			em.Count(GroupAll), em.Count(GroupEnemies))
	}

	remaining := em.GetEntities(GroupEnemies)
	if len(remaining) != 1 || remaining[0] != b {
		t.Error("Only entity b should remain")
	}
}

func TestUpdateGroupRemovesExpired(t *testing.T) {
	em := NewEntityManager()
	shortLived := newTestEntity(em, 0, 0)
	shortLived.ttl = 2
	longLived := newTestEntity(em, 0, 0)

	em.Add(shortLived, GroupAll, GroupExplosions)
	em.Add(longLived, GroupAll)

	if removed := em.UpdateGroup(GroupAll); len(removed) != 0 {
		t.Errorf("Expected no removals after first update, got %d", len(removed))
	}

	removed := em.UpdateGroup(GroupAll)
	if len(removed) != 1 || removed[0] != shortLived {
		t.Fatalf("Expected short-lived entity removed, got %v", removed)
	}

	// 过期实体从所有分组中移除
	if em.InGroup(shortLived.ID(), GroupExplosions) {
		t.Error("Expired entity should be removed from every group")
	}
	if longLived.updates != 2 {
		t.Errorf("Expected 2 updates, got %d", longLived.updates)
	}
}

func TestUpdateGroupOnlyTouchesGroup(t *testing.T) {
	em := NewEntityManager()
	inGroup := newTestEntity(em, 0, 0)
	outside := newTestEntity(em, 0, 0)
	em.Add(inGroup, GroupAll, GroupExplosions)
	em.Add(outside, GroupAll)

	em.UpdateGroup(GroupExplosions)

	if inGroup.updates != 1 || outside.updates != 0 {
		t.Errorf("Expected updates 1/0, got %d/%d", inGroup.updates, outside.updates)
	}
}

func TestGroupCollideDestroyBoth(t *testing.T) {
	em := NewEntityManager()
	bullet := newTestEntity(em, 100, 100)
	enemy := newTestEntity(em, 105, 105)
	farEnemy := newTestEntity(em, 400, 400)

	em.Add(bullet, GroupAll, GroupBullets)
	em.Add(enemy, GroupAll, GroupEnemies)
	em.Add(farEnemy, GroupAll, GroupEnemies)

	hits := em.GroupCollide(GroupBullets, GroupEnemies, true)
	if len(hits) != 1 {
		t.Fatalf("Expected 1 hit, got %d", len(hits))
	}
	if hits[0].A != bullet || hits[0].B != enemy {
		t.Error("Hit pair should be (bullet, enemy)")
	}
	if em.IsAlive(bullet.ID()) || em.IsAlive(enemy.ID()) {
		t.Error("Both colliding entities should be destroyed")
	}
	if !em.IsAlive(farEnemy.ID()) {
		t.Error("Non-colliding enemy should survive")
	}
}

func TestGroupCollideFirstMatchWins(t *testing.T) {
	em := NewEntityManager()
	// 两颗子弹同时命中同一架敌机
	b1 := newTestEntity(em, 100, 100)
	b2 := newTestEntity(em, 102, 100)
	enemy := newTestEntity(em, 101, 100)

	em.Add(b1, GroupAll, GroupBullets)
	em.Add(b2, GroupAll, GroupBullets)
	em.Add(enemy, GroupAll, GroupEnemies)

	hits := em.GroupCollide(GroupBullets, GroupEnemies, true)
	if len(hits) != 1 {
		t.Fatalf("Enemy can be hit at most once per pass, got %d hits", len(hits))
	}
	if hits[0].A != b1 {
		t.Error("First bullet in insertion order should win")
	}
	if !em.IsAlive(b2.ID()) {
		t.Error("Second bullet should survive")
	}
}

func TestGroupCollideOneEnemyPerBullet(t *testing.T) {
	em := NewEntityManager()
	bullet := newTestEntity(em, 100, 100)
	e1 := newTestEntity(em, 101, 100)
	e2 := newTestEntity(em, 99, 100)

	em.Add(bullet, GroupAll, GroupBullets)
	em.Add(e1, GroupAll, GroupEnemies)
	em.Add(e2, GroupAll, GroupEnemies)

	hits := em.GroupCollide(GroupBullets, GroupEnemies, true)
	if len(hits) != 1 {
		t.Fatalf("Expected 1 hit, got %d", len(hits))
	}
	if em.IsAlive(e1.ID()) || !em.IsAlive(e2.ID()) {
		t.Error("Only the first enemy should be destroyed")
	}
}

func TestGroupCollideWithoutDestroy(t *testing.T) {
	em := NewEntityManager()
	bullet := newTestEntity(em, 100, 100)
	e1 := newTestEntity(em, 101, 100)
	e2 := newTestEntity(em, 99, 100)

	em.Add(bullet, GroupAll, GroupBullets)
	em.Add(e1, GroupAll, GroupEnemies)
	em.Add(e2, GroupAll, GroupEnemies)

	hits := em.GroupCollide(GroupBullets, GroupEnemies, false)
	if len(hits) != 2 {
		t.Errorf("Expected every overlapping pair, got %d", len(hits))
	}
	if em.Count(GroupAll) != 3 {
		t.Error("No entity should be removed")
	}
}

func TestCollidesWithGroup(t *testing.T) {
	em := NewEntityManager()
	player := newTestEntity(em, 100, 100)
	enemy := newTestEntity(em, 300, 300)
	em.Add(player, GroupAll)
	em.Add(enemy, GroupAll, GroupEnemies)

	if em.CollidesWithGroup(player, GroupEnemies) {
		t.Error("Distant entities should not collide")
	}

	// 边缘恰好相接不算碰撞
	touching := newTestEntity(em, 110, 100)
	em.Add(touching, GroupAll, GroupEnemies)
	if em.CollidesWithGroup(player, GroupEnemies) {
		t.Error("Touching edges should not count as a collision")
	}

	overlapping := newTestEntity(em, 109, 100)
	em.Add(overlapping, GroupAll, GroupEnemies)
	if !em.CollidesWithGroup(player, GroupEnemies) {
		t.Error("Overlapping entities should collide")
	}
	if em.Count(GroupEnemies) != 3 {
		t.Error("CollidesWithGroup must not remove entities")
	}
}
