package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	q "cldurl/core/qualifier"
	"cldurl/core/transformation"
	cerrors "cldurl/internal/errors"
)

func mustTranslate(t *testing.T, opts Options) string {
	t.Helper()
	tr, err := Translate(opts)
	require.NoError(t, err)
	return tr.String()
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"empty", Options{}, ""},
		{"width and height without crop are dropped", Options{"width": 100, "height": 100}, ""},
		{"crop keeps width and height", Options{"width": 100, "height": 100, "crop": "crop"}, "c_crop,h_100,w_100"},
		{"layer keeps width", Options{"width": 100, "overlay": "text:hello"}, "l_text:hello,w_100"},
		{"auto width kept", Options{"width": "auto:breakpoints", "height": 10}, "h_10,w_auto:breakpoints"},
		{"alphabetical", Options{"x": 1, "y": 2, "radius": 3, "gravity": "center", "quality": 0.4, "prefix": "a"}, "g_center,p_a,q_0.4,r_3,x_1,y_2"},
		{"nested base", Options{"transformation": Options{"x": 100, "y": 100, "crop": "fill"}, "crop": "crop", "width": 100}, "c_fill,x_100,y_100/c_crop,w_100"},
		{"size shorthand", Options{"size": "10x10", "crop": "crop"}, "c_crop,h_10,w_10"},
		{"named transformation string", Options{"transformation": "blip"}, "t_blip"},
		{"named transformations joined", Options{"transformation": []string{"blip", "blop"}}, "t_blip.blop"},
		{
			"mixed list expands",
			Options{"transformation": []interface{}{map[string]interface{}{"effect": "sepia"}, "logo"}, "width": 10, "crop": "fit"},
			"e_sepia/t_logo/c_fit,w_10",
		},
		{
			"typed map list expands",
			Options{"transformation": []map[string]interface{}{{"crop": "fill", "width": 10}}, "angle": 90},
			"c_fill,w_10/a_90",
		},
		{
			"options list expands",
			Options{"transformation": []Options{{"effect": "sepia"}, {"radius": "max"}}, "angle": 90},
			"e_sepia/r_max/a_90",
		},
		{"unknown keys ignored", Options{"cloud_name": "demo", "secure": true, "html_width": 10}, ""},
		{"offset string", Options{"offset": "2.5..30%"}, "eo_30p,so_2.5"},
		{"offset list", Options{"offset": []interface{}{"auto", 5}}, "eo_5,so_auto"},
		{"effect list", Options{"effect": []interface{}{"sepia", -10}}, "e_sepia:-10"},
		{"effect map", Options{"effect": map[string]interface{}{"brightness": 30}}, "e_brightness:30"},
		{"angle list", Options{"angle": []string{"auto_left", "hflip"}}, "a_auto_left.hflip"},
		{"flags list", Options{"flags": []string{"abc", "def"}}, "fl_abc.def"},
		{"border map", Options{"border": map[string]interface{}{"width": 5, "color": "#ffaabbdd"}}, "bo_5px_solid_rgb:ffaabbdd"},
		{"border string", Options{"border": "1px_solid_blue"}, "bo_1px_solid_blue"},
		{"fps range", Options{"fps": []interface{}{24, 29.97}}, "fps_24-29.97"},
		{"video codec map", Options{"video_codec": map[string]interface{}{"codec": "h264", "profile": "basic", "level": "3.1"}}, "vc_h264:basic:3.1"},
		{"video codec bframes", Options{"video_codec": map[string]interface{}{"codec": "h265", "profile": "auto", "level": "auto", "b_frames": false}}, "vc_h265:auto:auto:bframes_no"},
		{"custom function", Options{"custom_function": map[string]interface{}{"function_type": "wasm", "source": "blur.wasm"}}, "fn_wasm:blur.wasm"},
		{"custom pre function", Options{"custom_pre_function": map[string]interface{}{"function_type": "wasm", "source": "blur.wasm"}}, "fn_pre:wasm:blur.wasm"},
		{"keyframe interval", Options{"keyframe_interval": 10}, "ki_10.0"},
		{"color rewrite", Options{"background": "#112233", "color": "red"}, "b_rgb:112233,co_red"},
		{"conditional first", Options{"if": "w_lt_200", "crop": "fill", "width": 120}, "if_w_lt_200,c_fill,w_120"},
		{"detected variables sorted", Options{"$foo": 10, "$bar": "width * 2", "crop": "scale", "width": "$foo"}, "$bar_w_mul_2,$foo_10,c_scale,w_$foo"},
		{
			"explicit variables keep order",
			Options{"variables": []interface{}{[]interface{}{"$z", 1}, []interface{}{"$a", "$z + 1"}}, "$m": 5},
			"$m_5,$z_1,$a_$z_add_1",
		},
		{"raw transformation trailing", Options{"width": 10, "crop": "fill", "raw_transformation": "g_north"}, "c_fill,w_10,g_north"},
		{"short key alias", Options{"q": "auto", "f": "auto"}, "f_auto,q_auto"},
		{"dpr float", Options{"dpr": 2.0}, "dpr_2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustTranslate(t, tt.opts))
		})
	}
}

func TestTranslateMatchesDirectConstruction(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		direct *transformation.Transformation
	}{
		{
			"resize",
			Options{"width": 100, "height": 200, "crop": "fill", "gravity": "face"},
			transformation.New(transformation.NewAction(q.Crop("fill"), q.Width(100), q.Height(200), q.Gravity("face"))),
		},
		{
			"chained",
			Options{"transformation": []interface{}{Options{"effect": "sepia"}}, "angle": 10},
			transformation.New(transformation.NewAction(q.Effect("sepia")), transformation.NewAction(q.Angle(10))),
		},
		{
			"conditional with variables",
			Options{"if": "face_count > 1", "$size": 30, "effect": "blur"},
			transformation.New(transformation.NewAction(q.Variable("size", 30), q.Effect("blur")).If("face_count > 1")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.direct.String(), mustTranslate(t, tt.opts))
		})
	}
}

func TestTranslateWithSettings(t *testing.T) {
	tr, err := TranslateWith(Options{"width": 100, "crop": "scale"}, Settings{ResponsiveWidth: true})
	require.NoError(t, err)
	assert.Equal(t, "c_limit,w_auto/c_scale,w_100", tr.String())

	tr, err = TranslateWith(Options{"responsive_width": true}, Settings{
		ResponsiveWidthTransformation: Options{"crop": "pad", "width": "auto:50"},
	})
	require.NoError(t, err)
	assert.Equal(t, "c_pad,w_auto:50", tr.String())

	tr, err = TranslateWith(Options{"width": 10, "crop": "fit"}, Settings{DPR: "auto"})
	require.NoError(t, err)
	assert.Equal(t, "c_fit,dpr_auto,w_10", tr.String())

	tr, err = TranslateWith(Options{"dpr": 1.5}, Settings{DPR: "auto"})
	require.NoError(t, err)
	assert.Equal(t, "dpr_1.5", tr.String())
}

func TestTranslateDoesNotMutateInput(t *testing.T) {
	opts := Options{"size": "10x20", "crop": "fill"}
	_, err := Translate(opts)
	require.NoError(t, err)
	assert.Equal(t, Options{"size": "10x20", "crop": "fill"}, opts)
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad size", Options{"size": "100"}},
		{"bad offset", Options{"offset": "5"}},
		{"too many radius values", Options{"radius": []int{1, 2, 3, 4, 5}}},
		{"bad keyframe interval", Options{"keyframe_interval": -1}},
		{"overlay without public id", Options{"overlay": map[string]interface{}{"resource_type": "video"}}},
		{"bad variables", Options{"variables": []interface{}{"$a"}}},
		{"nested failure", Options{"transformation": []interface{}{Options{"size": "10"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.opts)
			require.Error(t, err)
			assert.True(t, cerrors.IsType(err, cerrors.TypeInput), err.Error())
		})
	}
}
