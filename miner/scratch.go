package miner

import (
	"github.com/yourbasic/bit"
)

// InferCtx MaxEnt推断用的可复用缓冲,单worker内串行复用,不跨worker共享
type InferCtx struct {
	seen []int // 已处理的因子下标
	sub  []int // 项集与因子单例集的交
}

// ModelScratch IsForbidden用的缓冲
type ModelScratch struct {
	width *bit.Set
	seen  []int
}

func newModelScratch() *ModelScratch {
	return &ModelScratch{width: bit.New()}
}

// Scratch 每个打分worker独占的一组缓冲:
// 两个行集合运算缓冲、一个推断上下文和一个IsForbidden用的缓冲
type Scratch struct {
	RowsA  *bit.Set
	RowsB  *bit.Set
	Infer  *InferCtx
	Forbid *ModelScratch
}

func NewScratch() *Scratch {
	return &Scratch{
		RowsA:  bit.New(),
		RowsB:  bit.New(),
		Infer:  &InferCtx{},
		Forbid: newModelScratch(),
	}
}

// inferPool 共享的推断上下文池,容量maxFactorWidth+1,按次借还
type inferPool struct {
	ch chan *InferCtx
}

func newInferPool(size int) *inferPool {
	if size < 1 {
		size = 1
	}
	p := &inferPool{ch: make(chan *InferCtx, size)}
	for i := 0; i < size; i++ {
		p.ch <- &InferCtx{}
	}
	return p
}

func (p *inferPool) Get() *InferCtx {
	select {
	case ctx := <-p.ch:
		return ctx
	default:
		return &InferCtx{}
	}
}

func (p *inferPool) Put(ctx *InferCtx) {
	select {
	case p.ch <- ctx:
	default:
	}
}
