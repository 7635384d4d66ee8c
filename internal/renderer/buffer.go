package renderer

import (
	"Tekka/internal/gpu"
)

const floatSize = 4

// Buffer owns one vertex or index buffer. Contents are uploaded once at
// creation.
type Buffer struct {
	device gpu.Device
	target gpu.BufferTarget
	handle uint32
	count  int
}

func NewVertexBuffer(device gpu.Device, data []float32) *Buffer {
	b := &Buffer{device: device, target: gpu.ArrayBuffer, handle: device.CreateBuffer(), count: len(data)}
	b.Bind()
	device.BufferFloats(gpu.ArrayBuffer, data)
	return b
}

func NewIndexBuffer(device gpu.Device, indices []uint32) *Buffer {
	b := &Buffer{device: device, target: gpu.ElementArrayBuffer, handle: device.CreateBuffer(), count: len(indices)}
	b.Bind()
	device.BufferUints(gpu.ElementArrayBuffer, indices)
	return b
}

func (b *Buffer) Handle() uint32 { return b.handle }

// Len returns the number of elements uploaded.
func (b *Buffer) Len() int { return b.count }

func (b *Buffer) Bind() {
	b.device.BindBuffer(b.target, b.handle)
}

func (b *Buffer) Unbind() {
	b.device.BindBuffer(b.target, 0)
}

func (b *Buffer) Delete() {
	if b.handle == 0 {
		return
	}
	b.device.DeleteBuffer(b.handle)
	b.handle = 0
}

// VertexArray records the attribute layout of a vertex buffer and, when
// given, the index buffer bound to it.
type VertexArray struct {
	device gpu.Device
	handle uint32
	vbo    *Buffer
	ebo    *Buffer
}

// NewVertexArray creates a vertex array and binds vbo (and ebo, which may be
// nil) into it. The array is left bound for attribute setup.
func NewVertexArray(device gpu.Device, vbo, ebo *Buffer) *VertexArray {
	va := &VertexArray{device: device, handle: device.CreateVertexArray(), vbo: vbo, ebo: ebo}
	va.Bind()
	vbo.Bind()
	if ebo != nil {
		ebo.Bind()
	}
	return va
}

// VertexAttributePointer describes attribute index as count floats starting
// offset floats into each vertex of vertexSize floats.
func (va *VertexArray) VertexAttributePointer(index uint32, count, vertexSize, offset int) {
	va.Bind()
	va.vbo.Bind()
	va.device.VertexAttribPointer(index, int32(count), vertexSize*floatSize, offset*floatSize)
	va.device.EnableVertexAttribArray(index)
}

func (va *VertexArray) Handle() uint32 { return va.handle }

func (va *VertexArray) Bind() {
	va.device.BindVertexArray(va.handle)
}

func (va *VertexArray) Unbind() {
	va.device.BindVertexArray(0)
}

func (va *VertexArray) Delete() {
	if va.handle == 0 {
		return
	}
	va.device.DeleteVertexArray(va.handle)
	va.handle = 0
}
