package dialect

import "fmt"

// namesV6, namesV7 and namesV8 are the fixed tables of well-known global
// variable names for each dialect (spec.md §2 "Variable Namer"), transcribed
// in full from the original tool's var_names6/7/8 tables. Entries the
// original leaves NULL (including index 0, which is always unnamed) render
// as varN instead of a symbolic name.
var namesV6 = map[uint32]string{
	1:  "g_ego",
	2:  "g_camera_cur_pos",
	3:  "g_have_msg",
	4:  "g_room",
	5:  "g_override",
	8:  "g_num_actor",
	10: "g_drive_number",
	11: "g_timer_1",
	12: "g_timer_2",
	13: "g_timer_3",
	17: "g_camera_min",
	18: "g_camera_max",
	19: "g_timer_next",
	20: "g_virtual_mouse_x",
	21: "g_virtual_mouse_y",
	22: "g_room_resource",
	23: "g_last_sound",
	24: "g_cutsceneexit_key",
	25: "g_talk_actor",
	26: "g_camera_fast",
	27: "g_scroll_script",
	28: "g_entry_script",
	29: "g_entry_script_2",
	30: "g_exit_script",
	31: "g_exit_script_2",
	32: "g_verb_script",
	33: "g_sentence_script",
	34: "g_hook_script",
	35: "g_begin_cutscene_script",
	36: "g_end_cutscene_script",
	37: "g_char_inc",
	38: "g_walkto_obj",
	39: "g_debug_mode",
	40: "g_heap_space",
	41: "g_scr_width",
	42: "g_restart_key",
	43: "g_pause_key",
	44: "g_mouse_x",
	45: "g_mouse_y",
	46: "g_timer",
	47: "g_timer_4",
	49: "g_video_mode",
	50: "g_save_load_key",
	51: "g_fixed_disk",
	52: "g_cursor_state",
	53: "g_user_put",
	54: "g_scr_height",
	56: "g_sound_thing",
	57: "g_talkstop_key",
	64: "g_sound_param",
	65: "g_sound_param_2",
	66: "g_sound_param_3",
	67: "g_mouse_present",
	68: "g_performance_1",
	69: "g_performance_2",
	71: "g_save_load_thing",
	72: "g_new_room",
	76: "g_ems_space",
}

var namesV7 = map[uint32]string{
	1:   "VAR_MOUSE_X",
	2:   "VAR_MOUSE_Y",
	3:   "VAR_VIRT_MOUSE_X",
	4:   "VAR_VIRT_MOUSE_Y",
	5:   "VAR_V6_SCREEN_WIDTH",
	6:   "VAR_V6_SCREEN_HEIGHT",
	7:   "VAR_CAMERA_POS_X",
	8:   "VAR_CAMERA_POS_Y",
	9:   "VAR_OVERRIDE",
	10:  "VAR_ROOM",
	11:  "VAR_ROOM_RESOURCE",
	12:  "VAR_TALK_ACTOR",
	13:  "VAR_HAVE_MSG",
	14:  "VAR_TIMER",
	15:  "VAR_TMR_4",
	22:  "VAR_LEFTBTN_DOWN",
	23:  "VAR_RIGHTBTN_DOWN",
	24:  "VAR_LEFTBTN_HOLD",
	25:  "VAR_RIGHTBTN_HOLD",
	26:  "VAR_PERFORMANCE_1",
	27:  "VAR_PERFORMANCE_2",
	32:  "VAR_V6_EMSSPACE",
	34:  "VAR_V6_RANDOM_NR",
	35:  "VAR_NEW_ROOM",
	36:  "VAR_WALKTO_OBJ",
	38:  "VAR_CAMERA_DEST_X",
	39:  "VAR_CAMERA_DEST_>",
	40:  "VAR_CAMERA_FOLLOWED_ACTOR",
	50:  "VAR_SCROLL_SCRIPT",
	51:  "VAR_ENTRY_SCRIPT",
	52:  "VAR_ENTRY_SCRIPT2",
	53:  "VAR_EXIT_SCRIPT",
	54:  "VAR_EXIT_SCRIPT2",
	55:  "VAR_VERB_SCRIPT",
	56:  "VAR_SENTENCE_SCRIPT",
	57:  "VAR_HOOK_SCRIPT",
	58:  "VAR_CUTSCENE_START_SCRIPT",
	59:  "VAR_CUTSCENE_END_SCRIPT",
	60:  "VAR_UNK_SCRIPT",
	61:  "VAR_UNK_SCRIPT2",
	62:  "VAR_CUTSCENEEXIT_KEY",
	63:  "VAR_RESTART_KEY",
	64:  "VAR_PAUSE_KEY",
	65:  "VAR_SAVELOADDIALOG_KEY",
	66:  "VAR_TALKSTOP_KEY",
	97:  "VAR_TIMER_NEXT",
	98:  "VAR_TMR_1",
	99:  "VAR_TMR_2",
	100: "VAR_TMR_3",
	101: "VAR_CAMERA_MIN_X",
	102: "VAR_CAMERA_MAX_X",
	103: "VAR_CAMERA_MIN_Y",
	104: "VAR_CAMERA_MAX_Y",
	105: "VAR_CAMERA_THRESHOLD_X",
	106: "VAR_CAMERA_THRESHOLD_Y",
	107: "VAR_CAMERA_SPEED_X",
	108: "VAR_CAMERA_SPEED_Y",
	109: "VAR_CAMERA_ACCEL_X",
	110: "VAR_CAMERA_ACCEL_Y",
	111: "VAR_EGO",
	112: "VAR_CURSORSTATE",
	113: "VAR_USERPUT",
	114: "VAR_DEFAULT_TALK_DELAY",
	115: "VAR_CHARINC",
	116: "VAR_DEBUGMODE",
	119: "VAR_CHARSET_MASK",
	123: "VAR_VIDEONAME",
	130: "VAR_STRING2DRAW",
	131: "VAR_CUSTOMSCALETABLE",
}

var namesV8 = map[uint32]string{
	1:   "room_width?",
	2:   "room_height?",
	3:   "cursor_screen_x",
	4:   "cursor_screen_y",
	5:   "cursor_x",
	6:   "cursor_y",
	7:   "cursor_state?",
	8:   "userface_state?",
	9:   "camera_x",
	10:  "camera_y",
	11:  "camera_dest_x",
	12:  "camera_dest_y",
	15:  "message_stuff?",
	24:  "timedate_year?",
	25:  "timedate_month?",
	26:  "timedate_day?",
	27:  "timedate_hour?",
	28:  "timedate_minute?",
	29:  "timedate_second?",
	30:  "override_hit",
	31:  "current_room",
	39:  "voice_text_mode",
	42:  "current_disk_number",
	51:  "script_before_roomentry",
	52:  "script_after_roomentry",
	53:  "script_before_roomexit",
	54:  "script_after_roomexit",
	56:  "sentence_script",
	57:  "pickup_script",
	58:  "cutscene_script",
	59:  "endcutscene_script",
	64:  "pause_key?",
	65:  "saveload_key?",
	126: "default_actor",
	129: "text_delay?",
	130: "sputm_debug",
}

func (d Dialect) table() map[uint32]string {
	switch d {
	case V7:
		return namesV7
	case V8:
		return namesV8
	default:
		return namesV6
	}
}

// NameOf returns the symbolic name of a global variable id, if the dialect's
// table has an entry for it.
func (d Dialect) NameOf(id uint32) (string, bool) {
	name, ok := d.table()[id]
	return name, ok
}

// RenderVar renders a variable reference following spec.md §4.2's rule:
// global+named -> the name; global+unnamed -> varN; bit -> bitvarN;
// local -> localvarN; otherwise -> ?var?N.
func (d Dialect) RenderVar(raw uint32) string {
	class, idx := ClassifyVar(raw, d.VarBits())
	switch class {
	case ClassGlobal:
		if name, ok := d.NameOf(idx); ok {
			return name
		}
		return fmt.Sprintf("var%d", idx)
	case ClassBit:
		return fmt.Sprintf("bitvar%d", idx)
	case ClassLocal:
		return fmt.Sprintf("localvar%d", idx)
	default:
		return fmt.Sprintf("?var?%d", raw)
	}
}
