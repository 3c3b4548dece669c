// Package minecraft is the command API of Minecraft Pi Edition and
// compatible Bukkit plugins (RaspberryJuice and friends).
//
// Each method issues one request over a shared connection.Connection.
// Commands that change the world are fire-and-forget; queries wait for the
// single reply line and decode it.
//
//	mc, err := minecraft.Connect(ctx, minecraft.DefaultAddress())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mc.Close()
//	mc.PostToChat("Hello World!")
package minecraft

import (
	"context"
	"net"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/mcpi/block"
	"github.com/lawnchairsociety/mcpi/connection"
	"github.com/lawnchairsociety/mcpi/geom"
)

// DefaultHost and DefaultPort are where the game listens out of the box.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 4711
)

// DefaultAddress returns DefaultHost:DefaultPort.
func DefaultAddress() string {
	return net.JoinHostPort(DefaultHost, strconv.Itoa(DefaultPort))
}

// Minecraft is a handle on one game. It borrows its connection, so several
// Minecraft values (and a Drawing) may share one.
type Minecraft struct {
	conn *connection.Connection
}

// New wraps an open connection.
func New(conn *connection.Connection) *Minecraft {
	return &Minecraft{conn: conn}
}

// Connect dials the game at addr; an empty addr means DefaultAddress.
func Connect(ctx context.Context, addr string, opts ...connection.Option) (*Minecraft, error) {
	if addr == "" {
		addr = DefaultAddress()
	}
	conn, err := connection.Dial(ctx, addr, opts...)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// Conn returns the underlying connection.
func (mc *Minecraft) Conn() *connection.Connection {
	return mc.conn
}

// Close shuts the connection down.
func (mc *Minecraft) Close() error {
	return mc.conn.Close()
}

// SetAutoFlush toggles flushing after every command. Turning it off lets
// bulk edits go out in fewer packets; call Flush when done.
func (mc *Minecraft) SetAutoFlush(enabled bool) error {
	return mc.conn.SetAutoFlush(enabled)
}

// Flush pushes queued commands to the game.
func (mc *Minecraft) Flush() error {
	return mc.conn.Flush()
}

// GetBlock returns the block type at t. The data value is always 0; use
// GetBlockWithData when it matters.
func (mc *Minecraft) GetBlock(t geom.Tile) (block.Block, error) {
	reply, err := mc.conn.Call("world.getBlock", t.X, t.Y, t.Z)
	if err != nil {
		return block.Block{}, err
	}
	return decodeBlock("world.getBlock", reply)
}

// GetBlockWithData returns the block type and data value at t.
func (mc *Minecraft) GetBlockWithData(t geom.Tile) (block.Block, error) {
	reply, err := mc.conn.Call("world.getBlockWithData", t.X, t.Y, t.Z)
	if err != nil {
		return block.Block{}, err
	}
	return decodeBlock("world.getBlockWithData", reply)
}

// SetBlock places b at t.
func (mc *Minecraft) SetBlock(t geom.Tile, b block.Block) error {
	args := append([]any{t.X, t.Y, t.Z}, b.Args()...)
	return mc.conn.Send("world.setBlock", args...)
}

// SetBlocks fills the cuboid between the corners from and to with b.
func (mc *Minecraft) SetBlocks(from, to geom.Tile, b block.Block) error {
	args := append([]any{from.X, from.Y, from.Z, to.X, to.Y, to.Z}, b.Args()...)
	return mc.conn.Send("world.setBlocks", args...)
}

// GetHeight returns the y of the highest non-air block in column x,z.
func (mc *Minecraft) GetHeight(x, z int) (int, error) {
	reply, err := mc.conn.Call("world.getHeight", x, z)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return 0, &connection.ResponseError{Op: "world.getHeight", Raw: reply}
	}
	y, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, &connection.ResponseError{Op: "world.getHeight", Raw: reply, Err: err}
	}
	return y, nil
}

// GetPlayerEntityIDs returns the entity IDs of every connected player.
func (mc *Minecraft) GetPlayerEntityIDs() ([]int, error) {
	reply, err := mc.conn.Call("world.getPlayerEntityIds")
	if err != nil {
		return nil, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, nil
	}
	var ids []int
	for _, field := range strings.Split(reply, "|") {
		id, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, &connection.ResponseError{Op: "world.getPlayerEntityIds", Raw: reply, Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SaveCheckpoint snapshots the world so RestoreCheckpoint can roll back.
func (mc *Minecraft) SaveCheckpoint() error {
	return mc.conn.Send("world.checkpoint.save")
}

// RestoreCheckpoint rolls the world back to the last checkpoint.
func (mc *Minecraft) RestoreCheckpoint() error {
	return mc.conn.Send("world.checkpoint.restore")
}

// WorldSetting changes a world setting such as "world_immutable" or
// "nametags_visible".
func (mc *Minecraft) WorldSetting(key string, enabled bool) error {
	return mc.conn.Send("world.setting", key, flag(enabled))
}

// PostToChat shows msg in the in-game chat.
func (mc *Minecraft) PostToChat(msg string) error {
	return mc.conn.Send("chat.post", msg)
}

// GetPos returns the exact position of the host player.
func (mc *Minecraft) GetPos() (geom.Vec3, error) {
	return mc.queryVec3("player.getPos")
}

// SetPos moves the host player.
func (mc *Minecraft) SetPos(v geom.Vec3) error {
	return mc.conn.Send("player.setPos", v.X, v.Y, v.Z)
}

// GetTilePos returns the block the host player stands in.
func (mc *Minecraft) GetTilePos() (geom.Tile, error) {
	return mc.queryTile("player.getTile")
}

// SetTilePos moves the host player to a block position.
func (mc *Minecraft) SetTilePos(t geom.Tile) error {
	return mc.conn.Send("player.setTile", t.X, t.Y, t.Z)
}

// PlayerSetting changes a host player setting such as "autojump".
func (mc *Minecraft) PlayerSetting(key string, enabled bool) error {
	return mc.conn.Send("player.setting", key, flag(enabled))
}

// GetEntityPos returns the exact position of entity id.
func (mc *Minecraft) GetEntityPos(id int) (geom.Vec3, error) {
	return mc.queryVec3("entity.getPos", id)
}

// SetEntityPos moves entity id.
func (mc *Minecraft) SetEntityPos(id int, v geom.Vec3) error {
	return mc.conn.Send("entity.setPos", id, v.X, v.Y, v.Z)
}

// GetEntityTilePos returns the block entity id stands in.
func (mc *Minecraft) GetEntityTilePos(id int) (geom.Tile, error) {
	return mc.queryTile("entity.getTile", id)
}

// SetEntityTilePos moves entity id to a block position.
func (mc *Minecraft) SetEntityTilePos(id int, t geom.Tile) error {
	return mc.conn.Send("entity.setTile", id, t.X, t.Y, t.Z)
}

// CameraNormal switches to the first-person camera of the host player.
func (mc *Minecraft) CameraNormal() error {
	return mc.conn.Send("camera.mode.setNormal")
}

// CameraNormalFor switches to the first-person camera of entity id.
func (mc *Minecraft) CameraNormalFor(id int) error {
	return mc.conn.Send("camera.mode.setNormal", id)
}

// CameraFixed fixes the camera in place.
func (mc *Minecraft) CameraFixed() error {
	return mc.conn.Send("camera.mode.setFixed")
}

// CameraFollow makes the camera follow the host player.
func (mc *Minecraft) CameraFollow() error {
	return mc.conn.Send("camera.mode.setFollow")
}

// CameraFollowEntity makes the camera follow entity id.
func (mc *Minecraft) CameraFollowEntity(id int) error {
	return mc.conn.Send("camera.mode.setFollow", id)
}

// CameraSetPos moves a fixed camera.
func (mc *Minecraft) CameraSetPos(v geom.Vec3) error {
	return mc.conn.Send("camera.setPos", v.X, v.Y, v.Z)
}

func (mc *Minecraft) queryVec3(op string, args ...any) (geom.Vec3, error) {
	reply, err := mc.conn.Call(op, args...)
	if err != nil {
		return geom.Vec3{}, err
	}
	v, err := geom.ParseVec3(reply)
	if err != nil {
		return geom.Vec3{}, &connection.ResponseError{Op: op, Raw: reply, Err: err}
	}
	return v, nil
}

func (mc *Minecraft) queryTile(op string, args ...any) (geom.Tile, error) {
	reply, err := mc.conn.Call(op, args...)
	if err != nil {
		return geom.Tile{}, err
	}
	t, err := geom.ParseTile(reply)
	if err != nil {
		return geom.Tile{}, &connection.ResponseError{Op: op, Raw: reply, Err: err}
	}
	return t, nil
}

func decodeBlock(op, reply string) (block.Block, error) {
	b, err := block.Decode(reply)
	if err != nil {
		return block.Block{}, &connection.ResponseError{Op: op, Raw: reply, Err: err}
	}
	return b, nil
}

// flag renders a setting value the way the game parses it.
func flag(enabled bool) int {
	if enabled {
		return 1
	}
	return 0
}
