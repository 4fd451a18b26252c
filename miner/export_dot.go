package miner

import (
	"fmt"
	"os"

	"github.com/awalterschulze/gographviz"

	"sigpat/share/base/logger"
)

// ToFactorGraph 把模型的因子图写成graphviz dot文件。
// 方框节点是模式,圆节点是单例,边表示模式覆盖该单例。
func (m *Model) ToFactorGraph(outPath string) {
	graphAst, _ := gographviz.Parse([]byte(`digraph G{}`))
	graph := gographviz.NewGraph()
	gographviz.Analyse(graphAst, graph)

	for fid, factor := range m.factors {
		if factor == nil {
			continue
		}
		for _, col := range factor.items {
			graph.AddNode("G", fmt.Sprintf("c%d", col),
				map[string]string{"label": fmt.Sprintf("\"c%d\"", col), "shape": "circle"})
		}
		for k, pattern := range factor.Patterns {
			pNode := fmt.Sprintf("f%dp%d", fid, k)
			graph.AddNode("G", pNode,
				map[string]string{"label": fmt.Sprintf("\"freq=%.4f\"", pattern.Freq), "shape": "box"})
			for _, col := range pattern.Items {
				graph.AddEdge(pNode, fmt.Sprintf("c%d", col), true, nil)
			}
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		logger.Errorf("error when open file:%s--%v", outPath, err)
		return
	}
	_, err = out.WriteString(graph.String())
	if err != nil {
		logger.Errorf("error when write to file:%s--%v", outPath, err)
		return
	}
	err = out.Close()
	if err != nil {
		logger.Errorf("error when close file:%s--%v", outPath, err)
		return
	}
}
