package miner

import (
	"github.com/yourbasic/bit"

	"sigpat/utils"
)

// buildGroupModels 按标签构造每组的MaxEnt模型与行掩码。
// labels为nil时退化为单组:一个覆盖全体行的模型,掩码为nil。
func buildGroupModels(d *Dataset, labels []int, opts Options) ([]*Model, []*bit.Set, []int, error) {
	if labels == nil {
		model := NewModel(d.SingletonFreqs(), d.NumRows, opts.MaxFactorSize, opts.MaxFactorWidth)
		return []*Model{model}, []*bit.Set{nil}, []int{d.NumRows}, nil
	}
	if len(labels) != d.NumRows {
		return nil, nil, nil, utils.ErrLabelSize
	}
	_, masks := GroupMasks(labels)
	models := make([]*Model, len(masks))
	sizes := make([]int, len(masks))
	scratch := bit.New()
	for g, mask := range masks {
		freqs := d.MaskedFreqs(mask, scratch)
		sizes[g] = mask.Size()
		models[g] = NewModel(freqs, sizes[g], opts.MaxFactorSize, opts.MaxFactorWidth)
	}
	maskSets := make([]*bit.Set, len(masks))
	copy(maskSets, masks)
	return models, maskSets, sizes, nil
}
