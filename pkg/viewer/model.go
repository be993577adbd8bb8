package viewer

// vec3 模型空间中的点
type vec3 struct{ X, Y, Z float64 }

// edge 线框中的一条边（顶点下标）
type edge struct{ A, B int }

// wireModel 线框模型
type wireModel struct {
	vertices []vec3
	edges    []edge
}

// box 添加一个长方体，返回新模型
func (m wireModel) box(cx, cy, cz, w, h, d float64) wireModel {
	base := len(m.vertices)
	for _, p := range [][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	} {
		m.vertices = append(m.vertices, vec3{cx + p[0]*w/2, cy + p[1]*h/2, cz + p[2]*d/2})
	}
	for _, e := range [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	} {
		m.edges = append(m.edges, edge{base + e[0], base + e[1]})
	}
	return m
}

// microscopeModel 简化的显微镜：底座、支柱、载物台、镜筒和目镜
// Y 轴向上，模型高度约为 2
func microscopeModel() wireModel {
	var m wireModel
	m = m.box(0, -0.9, 0, 1.2, 0.2, 0.8)        // 底座
	m = m.box(-0.4, -0.2, 0, 0.2, 1.2, 0.3)     // 支柱
	m = m.box(0.1, -0.1, 0, 0.8, 0.08, 0.6)     // 载物台
	m = m.box(0.05, 0.45, 0, 0.22, 0.8, 0.22)   // 镜筒
	m = m.box(0.05, 0.95, 0, 0.14, 0.2, 0.14)   // 目镜
	m = m.box(0.05, -0.02, 0, 0.12, 0.12, 0.12) // 物镜
	return m
}
