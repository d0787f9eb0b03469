package win32

import "testing"

func TestParseAccelerator(t *testing.T) {
	tests := []struct {
		combo   string
		mod     uint32
		vk      uint32
		wantErr bool
	}{
		{combo: "Ctrl+Shift+Esc", mod: modCtrl | modShift, vk: 0x1B},
		{combo: "ctrl+shift+escape", mod: modCtrl | modShift, vk: 0x1B},
		{combo: "Alt+Space", mod: modAlt, vk: 0x20},
		{combo: "Win+K", mod: modWin, vk: 'K'},
		{combo: "Super+k", mod: modWin, vk: 'K'},
		{combo: "Cmd+Shift+2", mod: modWin | modShift, vk: '2'},
		{combo: "Ctrl+F12", mod: modCtrl, vk: 0x7B},
		{combo: "F1", mod: 0, vk: 0x70},
		{combo: "Ctrl + Alt + Delete", mod: modCtrl | modAlt, vk: 0x2E},
		{combo: "", wantErr: true},
		{combo: "Ctrl+", wantErr: true},
		{combo: "Bogus+K", wantErr: true},
		{combo: "Ctrl+Widget", wantErr: true},
		{combo: "Ctrl+F25", wantErr: true},
	}

	for _, tt := range tests {
		mod, vk, err := ParseAccelerator(tt.combo)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAccelerator(%q): expected error, got mod=%#x vk=%#x", tt.combo, mod, vk)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAccelerator(%q): unexpected error: %v", tt.combo, err)
			continue
		}
		if mod != tt.mod || vk != tt.vk {
			t.Errorf("ParseAccelerator(%q) = (%#x, %#x), want (%#x, %#x)", tt.combo, mod, vk, tt.mod, tt.vk)
		}
	}
}
