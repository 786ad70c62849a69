package ecs

import (
	"github.com/decker502/planewar/pkg/components"
	"github.com/kamstrup/intmap"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// Entity 是所有游戏实体共享的最小能力接口
//
// 实体只负责自己的更新规则和视觉表现，
// 不知道自己属于哪些分组；移除由 EntityManager 执行。
type Entity interface {
	// ID 返回实体ID
	ID() EntityID
	// Update 推进一个 tick，返回 true 表示实体已过期（离屏或寿命耗尽）
	Update() bool
	// Bounds 返回当前碰撞盒
	Bounds() components.AABB
	// Visual 返回当前帧的视觉表现
	Visual() components.Visual
}

// Group 实体分组
type Group uint8

const (
	// GroupAll 所有参与更新和绘制的实体
	GroupAll Group = iota
	// GroupEnemies 敌机
	GroupEnemies
	// GroupBullets 玩家子弹
	GroupBullets
	// GroupExplosions 爆炸特效
	GroupExplosions

	groupCount
)

// String 返回分组名称（用于日志）
func (g Group) String() string {
	switch g {
	case GroupAll:
		return "all"
	case GroupEnemies:
		return "enemies"
	case GroupBullets:
		return "bullets"
	case GroupExplosions:
		return "explosions"
	default:
		return "unknown"
	}
}

type groupMask uint8

func (g Group) mask() groupMask {
	return 1 << g
}

// group 保存一个分组的成员
// order 保持加入顺序以保证遍历顺序稳定；已删除的ID延迟到下次遍历时清理
type group struct {
	order   []EntityID
	members *intmap.Map[EntityID, Entity]
	stale   int
}

func newGroup() *group {
	return &group{
		order:   make([]EntityID, 0, 64),
		members: intmap.New[EntityID, Entity](64),
	}
}

// compact 清除 order 中已被删除的ID
func (g *group) compact() {
	if g.stale == 0 {
		return
	}
	live := g.order[:0]
	for _, id := range g.order {
		if _, ok := g.members.Get(id); ok {
			live = append(live, id)
		}
	}
	g.order = live
	g.stale = 0
}

// Hit 一次碰撞检测命中的实体对
type Hit struct {
	A Entity // 来自第一个分组
	B Entity // 来自第二个分组
}

// EntityManager 管理所有存活实体及其分组
//
// 存活 = 至少属于一个分组。实体被 DestroyEntity 后从所有分组中移除，
// 之后不会再被遍历到。实体ID不会复用。
type EntityManager struct {
	nextID uint64
	groups [groupCount]*group
	// 实体ID -> 所属分组位掩码
	masks *intmap.Map[EntityID, groupMask]
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	em := &EntityManager{
		nextID: 1, // ID从1开始,0保留为无效ID
		masks:  intmap.New[EntityID, groupMask](128),
	}
	for i := range em.groups {
		em.groups[i] = newGroup()
	}
	return em
}

// CreateEntity 分配新的唯一实体ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	return id
}

// Add 将实体加入指定分组
// 已经在某个分组中的实体不会被重复加入该分组；被删除后重新加入的实体只出现一次
func (em *EntityManager) Add(e Entity, groups ...Group) {
	id := e.ID()
	mask, _ := em.masks.Get(id)
	for _, g := range groups {
		if g >= groupCount || mask&g.mask() != 0 {
			continue
		}
		mask |= g.mask()
		grp := em.groups[g]
		// order 中可能还留着该ID被删除前的旧位置
		grp.compact()
		grp.order = append(grp.order, id)
		grp.members.Put(id, e)
	}
	if mask != 0 {
		em.masks.Put(id, mask)
	}
}

// DestroyEntity 立即将实体从所有分组中移除
// 返回 false 表示实体不存在（已被移除过）
func (em *EntityManager) DestroyEntity(id EntityID) bool {
	mask, ok := em.masks.Get(id)
	if !ok {
		return false
	}
	for g := Group(0); g < groupCount; g++ {
		if mask&g.mask() == 0 {
			continue
		}
		grp := em.groups[g]
		grp.members.Del(id)
		grp.stale++
	}
	em.masks.Del(id)
	return true
}

// IsAlive 检查实体是否仍属于任何分组
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.masks.Get(id)
	return ok
}

// InGroup 检查实体是否属于指定分组
func (em *EntityManager) InGroup(id EntityID, g Group) bool {
	if g >= groupCount {
		return false
	}
	_, ok := em.groups[g].members.Get(id)
	return ok
}

// Count 返回分组内存活实体数量
func (em *EntityManager) Count(g Group) int {
	if g >= groupCount {
		return 0
	}
	grp := em.groups[g]
	return len(grp.order) - grp.stale
}

// GetEntities 按加入顺序返回分组内实体的快照
// 返回的切片可以在遍历时安全地增删实体
func (em *EntityManager) GetEntities(g Group) []Entity {
	if g >= groupCount {
		return nil
	}
	grp := em.groups[g]
	grp.compact()
	result := make([]Entity, 0, len(grp.order))
	for _, id := range grp.order {
		if e, ok := grp.members.Get(id); ok {
			result = append(result, e)
		}
	}
	return result
}

// UpdateGroup 更新分组内所有实体，并移除报告过期的实体
//
// 过期实体从所有分组中移除（而不仅是当前分组）。
// 返回值：本次被移除的实体，按遍历顺序
func (em *EntityManager) UpdateGroup(g Group) []Entity {
	var expired []Entity
	for _, e := range em.GetEntities(g) {
		if e.Update() {
			expired = append(expired, e)
		}
	}
	for _, e := range expired {
		em.DestroyEntity(e.ID())
	}
	return expired
}

// GroupCollide 检测两个分组之间的碰撞
//
// 按 a、b 的加入顺序两两比较碰撞盒。
// destroyBoth 为 false 时记录所有重叠的实体对，不移除任何实体；
// 为 true 时每个实体最多参与一次命中：首个匹配生效，双方立即从所有分组中移除。
func (em *EntityManager) GroupCollide(a, b Group, destroyBoth bool) []Hit {
	as := em.GetEntities(a)
	bs := em.GetEntities(b)
	var hits []Hit

	for _, ea := range as {
		if destroyBoth && !em.IsAlive(ea.ID()) {
			continue
		}
		boxA := ea.Bounds()
		for _, eb := range bs {
			if ea.ID() == eb.ID() {
				continue
			}
			if destroyBoth && !em.IsAlive(eb.ID()) {
				continue
			}
			if !boxA.Overlaps(eb.Bounds()) {
				continue
			}
			hits = append(hits, Hit{A: ea, B: eb})
			if destroyBoth {
				em.DestroyEntity(ea.ID())
				em.DestroyEntity(eb.ID())
				break
			}
		}
	}
	return hits
}

// CollidesWithGroup 检查单个实体是否与分组内任意实体重叠
// 不移除任何实体
func (em *EntityManager) CollidesWithGroup(e Entity, g Group) bool {
	box := e.Bounds()
	for _, other := range em.GetEntities(g) {
		if other.ID() == e.ID() {
			continue
		}
		if box.Overlaps(other.Bounds()) {
			return true
		}
	}
	return false
}
