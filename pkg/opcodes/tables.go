package opcodes

import (
	"github.com/xplshn/descumm/pkg/descriptor"
	"github.com/xplshn/descumm/pkg/dialect"
	"github.com/xplshn/descumm/pkg/expr"
)

// entry pairs a dispatch handler with the name used in diagnostics.
type entry struct {
	name    string
	handler Handler
}

// Table is one dialect's opcode -> handler map, spec.md §4.8: "Two
// dispatchers share all the helper tables: one for v6/v7 ..., one for v8
// (renumbered)."
type Table map[byte]entry

func namedEntries(defs map[byte]string) map[byte]*descriptor.Descriptor {
	out := make(map[byte]*descriptor.Descriptor, len(defs))
	for b, s := range defs {
		out[b] = descriptor.Parse(s)
	}
	return out
}

func withBinaryOps(t Table, start byte, count int) {
	for i := 0; i < count; i++ {
		op, ok := expr.BinaryOperatorAt(i)
		if !ok {
			break
		}
		t[start+byte(i)] = entry{name: op.String(), handler: binaryOpHandler(op)}
	}
}

func withNamed(t Table, named map[byte]*descriptor.Descriptor) {
	for b, d := range named {
		t[b] = entry{d.Label, namedCallHandler(d.Label, d)}
	}
}

// v6v7NamedDescriptors are the family-4 named-call opcodes shared by v6 and
// v7, transcribed from original_source/descumm6.cpp's next_line() (lines
// ~1900-2411). Two opcodes (0x78 panCameraTo, 0x7A setCameraAt) drop one
// 'p' atom under v6 in the original (`if (scriptVersion < 7)`); rather than
// forking the whole table over that single difference, both are kept in
// the shared table using the v7 (two-argument) form, and the v6-only
// one-argument form is registered as an override in v6OnlyNamedDescriptors.
var v6v7NamedDescriptors = namedEntries(map[byte]string{
	0x5E: "lpp|startScriptEx",
	0x5F: "lp|startScript",
	0x60: "lppp|startObject",
	0x61: "pp|setObjectState",
	0x62: "ppp|setObjectXY",
	0x65: "|stopObjectCodeA",
	0x66: "|stopObjectCodeB",
	0x67: "|endCutscene",
	0x68: "l|beginCutscene",
	0x69: "|stopMusic",
	0x6A: "p|freezeUnfreeze",
	0x6B: "x" + "cursorCommand\x00" +
		"90|cursorOn," +
		"91|cursorOff," +
		"92|userPutOn," +
		"93|userPutOff," +
		"94|softCursorOn," +
		"95|softCursorOff," +
		"96|softUserputOn," +
		"97|softUserputOff," +
		"99pp|setCursorImg," +
		"9App|setCursorHotspot," +
		"9Cp|initCharset," +
		"9Dl|charsetColors," +
		"D6p|makeCursorColorTransparent," +
		"|cursorCommand",
	0x6C: "|break",
	0x6D: "rlp|ifClassOfIs",
	0x6E: "lp|setClass",
	0x6F: "rp|getState",
	0x70: "pp|setState",
	0x71: "pp|setOwner",
	0x72: "rp|getOwner",
	0x74: "p|startSound",
	0x75: "p|stopSound",
	0x76: "p|startMusic",
	0x77: "p|stopObjectScript",
	0x78: "pp|panCameraTo",
	0x79: "p|actorFollowCamera",
	0x7A: "pp|setCameraAt",
	0x7B: "p|loadRoom",
	0x7C: "p|stopScript",
	0x7D: "ppp|walkActorToObj",
	0x7E: "ppp|walkActorTo",
	0x7F: "pppp|putActorInRoom",
	0x80: "zp|putActorAtObject",
	0x81: "pp|faceActor",
	0x82: "pp|animateActor",
	0x83: "pppp|doSentence",
	0x84: "z|pickupObject",
	0x85: "ppzp|loadRoomWithEgo",
	0x87: "rp|getRandomNumber",
	0x88: "rpp|getRandomNumberRange",
	0x8A: "rp|getActorMoving",
	0x8B: "rp|isScriptRunning",
	0x8C: "rp|getActorRoom",
	0x8D: "rp|getObjectX",
	0x8E: "rp|getObjectY",
	0x8F: "rp|getObjectDir",
	0x90: "rp|getActorWalkBox",
	0x91: "rp|getActorCostume",
	0x92: "rpp|findInventory",
	0x93: "rp|getInventoryCount",
	0x94: "rpp|getVerbFromXY",
	0x95: "|beginOverride",
	0x96: "|endOverride",
	0x97: "ps|setObjectName",
	0x98: "rp|isSoundRunning",
	0x99: "pl|setBoxFlags",
	0x9A: "|createBoxMatrix",
	0x9B: "x" + "resourceRoutines\x00" +
		"64p|loadScript," +
		"65p|loadSound," +
		"66p|loadCostume," +
		"67p|loadRoom," +
		"68p|nukeScript," +
		"69p|nukeSound," +
		"6Ap|nukeCostume," +
		"6Bp|nukeRoom," +
		"6Cp|lockScript," +
		"6Dp|lockSound," +
		"6Ep|lockCostume," +
		"6Fp|lockRoom," +
		"70p|unlockScript," +
		"71p|unlockSound," +
		"72p|unlockCostume," +
		"73p|unlockRoom," +
		"75p|loadCharset," +
		"76p|nukeCharset," +
		"77z|loadFlObject," +
		"|resourceRoutines",
	0x9C: "x" + "roomOps\x00" +
		"ACpp|roomScroll," +
		"AEpp|setScreen," +
		"AFpppp|setPalColor," +
		"B0|shakeOn," +
		"B1|shakeOff," +
		"B3ppp|unkRoomFunc2," +
		"B4pp|saveLoadThing," +
		"B5p|screenEffect," +
		"B6ppppp|unkRoomFunc2," +
		"B7ppppp|unkRoomFunc3," +
		"BApppp|palManipulate," +
		"BBpp|colorCycleDelay," +
		"D5p|setPalette," +
		"|roomOps",
	0x9D: "x" + "actorSet\x00" +
		"C5p|setCurActor," +
		"4Cp|setActorCostume," +
		"4Dpp|setActorWalkSpeed," +
		"4El|setActorSound," +
		"4Fp|setActorWalkFrame," +
		"50pp|setActorTalkFrame," +
		"51p|setActorStandFrame," +
		"52ppp|actorSet82," +
		"53|initActor," +
		"54|setActorElevation," +
		"55|setActorDefAnim," +
		"56pp|setActorPalette," +
		"57p|setActorTalkColor," +
		"58s|setActorName," +
		"59p|setActorInitFrame," +
		"5Bp|setActorWidth," +
		"5Cp|setActorScale," +
		"5D|setActorNeverZClip," +
		"5Ep|setActorNeverZClip," +
		"E1p|setActorNeverZClip," +
		"5F|setActorIgnoreBoxes," +
		"60|setActorFollowBoxes," +
		"61|setActorAnimSpeed," +
		"62|setActorShadowMode," +
		"63pp|setActorTalkPos," +
		"C6p|setActorAnimVar," +
		"D7|setActorIgnoreTurnsOn," +
		"D8|setActorIgnoreTurnsOff," +
		"D9|initActorLittle," +
		"E3p|setActorLayer," +
		"E4p|setActorWalkScript," +
		"E5|setActorStanding," +
		"E6p|setActorDirection," +
		"E7p|actorTurnToDirection," +
		"E9|freezeActor," +
		"EA|unfreezeActor," +
		"EBp|setTalkScript," +
		"|actorSet",
	0x9E: "x" + "verbOps\x00" +
		"C4p|setCurVerb," +
		"7Cp|verbLoadImg," +
		"7Ds|verbLoadString," +
		"7Ep|verbSetColor," +
		"7Fp|verbSetHiColor," +
		"80pp|verbSetXY," +
		"81|verbSetCurmode1," +
		"82|verbSetCurmode0," +
		"83|verbKill," +
		"84|verbInit," +
		"85p|verbSetDimColor," +
		"86|verbSetCurmode2," +
		"87p|verbSetKey," +
		"88|verbSetCenter," +
		"89p|verbSetToString," +
		"8Bpp|verbSetToObject," +
		"8Cp|verbSetBkColor," +
		"FF|verbRedraw," +
		"|verbOps",
	0x9F: "rpp|getActorFromXY",
	0xA0: "rpp|findObject",
	0xA1: "lp|pseudoRoom",
	0xA2: "rp|getActorElevation",
	0xA3: "rpp|getVerbEntrypoint",
	0xA4: "x" + "arrayOps\x00" +
		"CDwps|arrayOps205," +
		"D0wpl|arrayOps208," +
		"D4wplp|arrayOps212," +
		"|arrayOps",
	0xA5: "x" + "saveRestoreVerbs\x00" +
		"8Dppp|saveRestoreA," +
		"8Eppp|saveRestoreB," +
		"8Fppp|saveRestoreC," +
		"|saveRestoreVerbs",
	0xA6: "ppppp|drawBox",
	0xA8: "rp|getActorWidth",
	0xA9: "x" + "wait\x00" +
		"A8pj|waitForActor," +
		"A9|waitForMessage," +
		"AA|waitForCamera," +
		"AB|waitForSentence," +
		"E2pj|waitUntilActorDrawn," +
		"E8pj|waitUntilActorTurned," +
		"|wait",
	0xAA: "rp|getActorScaleX",
	0xAB: "rp|getActorAnimCounter1",
	0xAC: "l|soundKludge",
	0xAD: "rlp|isAnyOf",
	0xAE: "x" + "quitPauseRestart\x00" +
		"9E|pauseGame," +
		"A0|shutDown," +
		"|quitPauseRestart",
	0xAF: "rp|isActorInBox",
	0xB0: "p|delay",
	0xB1: "p|delayLonger",
	0xB2: "p|delayVeryLong",
	0xB3: "|stopSentence",
	0xB4: "m" + "print_0_\x00" + "x" + "print_0\x00" +
		"41pp|XY," + "42p|color," + "43p|right," + "45|center," +
		"47|left," + "48|overhead," + "4A|new3," + "4Bs|msg," +
		"FE|begin," + "FF|end," + "|print_0",
	0xB5: "m" + "print_1_\x00" + "x" + "print_1\x00" +
		"41pp|XY," + "42p|color," + "43p|right," + "45|center," +
		"47|left," + "48|overhead," + "4A|new3," + "4Bs|msg," +
		"FE|begin," + "FF|end," + "|print_1",
	0xB6: "m" + "print_2_\x00" + "x" + "print_2\x00" +
		"41pp|XY," + "42p|color," + "43p|right," + "45|center," +
		"47|left," + "48|overhead," + "4A|new3," + "4Bs|msg," +
		"FE|begin," + "FF|end," + "|print_2",
	0xB7: "m" + "print_3_\x00" + "x" + "print_3\x00" +
		"41pp|XY," + "42p|color," + "43p|right," + "45|center," +
		"47|left," + "48|overhead," + "4A|new3," + "4Bs|msg," +
		"FE|begin," + "FF|end," + "|print_3",
	0xB8: "m" + "print_actor_\x00" + "x" + "print_actor\x00" +
		"41pp|XY," + "42p|color," + "43p|right," + "45|center," +
		"47|left," + "48|overhead," + "4A|new3," + "4Bs|msg," +
		"FEp|begin," + "FF|end," + "|print_actor",
	0xB9: "m" + "print_ego_\x00" + "x" + "print_ego\x00" +
		"41pp|XY," + "42p|color," + "43p|right," + "45|center," +
		"47|left," + "48|overhead," + "4A|new3," + "4Bs|msg," +
		"FE|begin," + "FF|end," + "|print_ego",
	0xBA: "ps|talkActor",
	0xBB: "s|talkEgo",
	0xBC: "x" + "dim\x00" +
		"C7pw|dimType5," +
		"C8pw|dimType1," +
		"C9pw|dimType2," +
		"CApw|dimType3," +
		"CBpw|dimType4," +
		"CCw|nukeArray," +
		"|dim",
	0xBE: "lpp|startObjectQuick",
	0xBF: "lp|startScriptQuick",
	0xC0: "x" + "dim2\x00" +
		"C7ppw|dim2Type5," +
		"C8ppw|dim2Type1," +
		"C9ppw|dim2Type2," +
		"CAppw|dim2Type3," +
		"CBppw|dim2Type4," +
		"|dim2",
	0xC4: "rp|abs",
	0xC5: "rpp|getDistObjObj",
	0xC6: "rppp|getDistObjPt",
	0xC7: "rpppp|getDistPtPt",
	0xC8: "rl|kernelFunction",
	0xC9: "l|miscOps",
	0xCA: "p|breakXTimes",
	0xCB: "lp|pickOneOf",
	0xCC: "plp|pickOneOfDefault",
	0xCD: "pppp|o6_unknownCD",
	0xD2: "rpp|getAnimateVariable",
	0xD5: "lpp|jumpToScript",
	0xD8: "rp|isRoomScriptRunning",
	0xEC: "rp|getActorLayer",
	0xED: "rp|getObjectNewDir",
})

// v6OnlyNamedDescriptors overrides the two opcodes descumm6.cpp special
// cases on `scriptVersion < 7`: panCameraTo and setCameraAt take one 'p'
// argument under v6 rather than the v7 form's two.
var v6OnlyNamedDescriptors = namedEntries(map[byte]string{
	0x78: "p|panCameraTo",
	0x7A: "p|setCameraAt",
})

// v8NamedDescriptors are the family-4 named-call opcodes of v8, transcribed
// from original_source/descumm6.cpp's next_line_V8() (lines ~1302-1792).
// case 0x76 (a nested get_byte()-selected array-init family) has no
// counterpart in pkg/descriptor's grammar -- it writes an array slot
// directly rather than rendering an ext() call -- and is left undispatched.
var v8NamedDescriptors = namedEntries(map[byte]string{
	0x67: "|break",
	0x6A: "p|delay",
	0x6B: "p|delayLonger",
	0x6C: "p|delayVeryLong",
	0x70: "x" + "dim\x00" +
		"0Apw|dim-scummvar," +
		"0Bpw|dim-string," +
		"CAw|undim," +
		"|dim",
	0x74: "x" + "dim2\x00" +
		"0Appw|dim2-scummvar," +
		"0Bppw|dim2-string," +
		"CAw|undim2," +
		"|dim2",
	0x79: "lpp|startScript",
	0x7A: "lp|startScriptQuick",
	0x7B: "|stopObjectCode",
	0x7C: "p|stopScript",
	0x7D: "lpp|jumpToScript",
	0x7F: "lppp|startObject",
	0x89: "lp|setClassOf?",
	0x93: "m" + "printLine_\x00" + "x" + "printLine\x00" +
		"C8|baseop," + "C9|end," + "CApp|XY," + "CBp|color," +
		"CC|center," + "CD|charset," + "CE|left," + "CF|overhead," +
		"D0|mumble," + "D1s|msg," + "D2|wrap," + "|printLine",
	0x94: "m" + "printCursor_\x00" + "x" + "printCursor\x00" +
		"C8|baseop," + "C9|end," + "CApp|XY," + "CBp|color," +
		"CC|center," + "CD|charset," + "CE|left," + "CF|overhead," +
		"D0|mumble," + "D1s|msg," + "D2|wrap," + "|printCursor",
	0x95: "m" + "printDebug_\x00" + "x" + "printDebug\x00" +
		"C8|baseop," + "C9|end," + "CApp|XY," + "CBp|color," +
		"CC|center," + "CD|charset," + "CE|left," + "CF|overhead," +
		"D0|mumble," + "D1s|msg," + "D2|wrap," + "|printDebug",
	0x96: "m" + "printSystem_\x00" + "x" + "printSystem\x00" +
		"C8|baseop," + "C9|end," + "CApp|XY," + "CBp|color," +
		"CC|center," + "CD|charset," + "CE|left," + "CF|overhead," +
		"D0|mumble," + "D1s|msg," + "D2|wrap," + "|printSystem",
	0x9C: "x" + "cursorCommand\x00" +
		"DC|cursorOn," +
		"DD|cursorOff," +
		"DE|userPutOn," +
		"DF|userPutOff," +
		"E0|softCursorOn," +
		"E1|softCursorOff," +
		"E2|softUserputOn," +
		"E3|softUserputOff," +
		"E4pp|setCursorImg," +
		"E5pp|setCursorHotspot," +
		"E6p|makeCursorColorTransparent," +
		"E7p|initCharset," +
		"E8l|charsetColors," +
		"|cursorCommand",
	0x9D: "p|loadRoom",
	0x9E: "ppzp|loadRoomWithEgo",
	0x9F: "ppp|walkActorToObj",
	0xA0: "ppp|walkActorTo",
	0xA1: "pppp|putActorInRoom",
	0xA2: "ppp|putActorAtObject",
	0xA3: "pp|faceActor",
	0xA4: "pp|animateActor",
	0xA5: "pppp|doSentence",
	0xA6: "z|pickupObject",
	0xAA: "x" + "resourceRoutines\x00" +
		"3Cp|loadCharset," +
		"3Dp|loadCostume," +
		"3Ep|loadObject," +
		"3Fp|loadRoom," +
		"40p|loadScript," +
		"41p|loadSound," +
		"42p|lockCostume," +
		"43p|lockRoom," +
		"44p|lockScript," +
		"45p|lockSound," +
		"46p|unlockCostume," +
		"47p|unlockRoom," +
		"48p|unlockScript," +
		"49p|unlockSound," +
		"4Ap|nukeCostume," +
		"4Bp|nukeRoom," +
		"4Cp|nukeScript," +
		"4Dp|nukeSound," +
		"|resourceRoutines",
	0xAB: "x" + "roomOps\x00" +
		"52|setRoomPalette," +
		"55|setRoomIntensity," +
		"57p|fade," +
		"58|setRoomColor," +
		"59|transformRoom," +
		"5A|colorCycleDelay," +
		"5B|copyPalette," +
		"5C|newPalette," +
		"5D|saveGame," +
		"5E|LoadGame," +
		"5F|setRoomSaturation," +
		"|roomOps",
	0xAC: "x" + "actorOps\x00" +
		"64p|setActorCostume," +
		"65pp|setActorWalkSpeed," +
		"67|setActorDefAnim," +
		"68p|setActorInitFrame," +
		"69pp|setActorTalkFrame," +
		"6Ap|setActorWalkFrame," +
		"6Bp|setActorStandFrame," +
		"6C|setActorAnimSpeed," +
		"6D|setActorDefault," +
		"6E|setActorElevation," +
		"6Fpp|setActorPalette," +
		"70p|setActorTalkColor," +
		"71s|setActorName," +
		"72p|setActorWidth," +
		"73p|setActorScale," +
		"74|setActorNeverZClip?," +
		"75p|setActorAlwayZClip?," +
		"76|setActorIgnoreBoxes," +
		"77|setActorFollowBoxes," +
		"78p|actorSpecialDraw," +
		"79pp|setActorTalkPos," +
		"7Ap|initActor," +
		"7Bpp|setActorAnimVar," +
		"7C|setActorIgnoreTurnsOn," +
		"7D|setActorIgnoreTurnsOff," +
		"7E|newActor," +
		"7Fp|setActorLayer," +
		"80|setActorStanding," +
		"81p|setActorDirection," +
		"82p|actorTurnToDirection," +
		"83p|setActorWalkScript," +
		"84p|setTalkScript," +
		"85|freezeActor," +
		"86|unfreezeActor," +
		"87p|setActorVolume," +
		"88p|setActorFrequency," +
		"89p|setActorPan," +
		"|actorOps",
	0xAD: "x" + "cameraOps\x00" +
		"32|freezeCamera," +
		"33|unfreezeCamera," +
		"|cameraOps",
	0xAE: "x" + "verbOps\x00" +
		"96p|verbInit," +
		"97|verbNew," +
		"98|verbDelete," +
		"99s|verbLoadString," +
		"9App|verbSetXY," +
		"9B|verbOn," +
		"9C|verbOff," +
		"9Dp|verbSetColor," +
		"9Ep|verbSetHiColor," +
		"A0p|verbSetDimColor," +
		"A1|verbSetDim," +
		"A2p|verbSetKey," +
		"A3p|verbLoadImg," +
		"A4p|verbSetToString," +
		"A5|verbSetCenter," +
		"A6p|verbSetCharset," +
		"A7p|verbSetLineSpacing," +
		"|verbOps",
	0xB1: "p|stopSound",
	0xB2: "l|soundKludge",
	0xB3: "x" + "system\x00" +
		"28|restart," +
		"29|quit," +
		"|system",
	0xBA: "y" + "kludge\x00" +
		"0B|lockObject," +
		"0C|unlockObject," +
		"0D|remapCostume," +
		"0E|remapCostumeInsert," +
		"0F|setVideoFrameRate," +
		"16|setBannerColors," +
		"1D|setKeyScript," +
		"1E|killAllScriptsButMe," +
		"1F|stopAllVideo," +
		"20|writeRegistryValue," +
		"6C|buildPaletteShadow," +
		"|kludge",
	0xCD: "rlp|isAnyOf",
	0xCE: "rp|getRandomNumber",
	0xCF: "rpp|getRandomNumberRange",
	0xD0: "rlp|ifClassOfIs",
	0xD1: "rp|getState",
	0xD2: "rp|getOwner",
	0xD3: "rp|isScriptRunning",
	0xD5: "rp|isSoundRunning",
	0xD6: "rp|abs",
	0xD8: "ry" + "f-kludge\x00" +
		"E0|readRegistryValue," +
		"|f-kludge",
	0xDB: "rpp|getActorFromXY",
	0xDC: "rpp|findObject",
	0xE1: "rpp|getAnimateVariable",
	0xE2: "rp|getActorRoom",
	0xE3: "rp|getActorWalkBox",
	0xE4: "rp|getActorMoving",
	0xE5: "rp|getActorCostume",
	0xE6: "rp|getActorScaleX",
	0xE7: "rp|getActorLayer",
	0xE8: "rp|getActorElevation",
	0xE9: "rp|getActorWidth",
	0xEA: "rp|getObjectDir",
	0xEB: "rp|getObjectX",
	0xEC: "rp|getObjectY",
})

// buildV6V7CoreTable builds the opcode-byte core (families 1-3) shared by
// v6 and v7, per original_source/descumm6.cpp's next_line(): most families
// come in a byte-id/word-id pair, a compactness optimization orthogonal to
// the dialect word size used for jumps and pushWord.
func buildV6V7CoreTable() Table {
	t := Table{
		0x00: {"pushByte", pushByteHandler},
		0x01: {"pushWord", pushWordHandler},
		0x02: {"varRead", varReadHandler(true)},
		0x03: {"varRead", varReadHandler(false)},
		0x06: {"array1DRead", array1DReadHandler(true)},
		0x07: {"array1DRead", array1DReadHandler(false)},
		0x0A: {"array2DRead", array2DReadHandler(true)},
		0x0B: {"array2DRead", array2DReadHandler(false)},
		0x0C: {"dup", dupHandler},
		0x0D: {"isZero", isZeroHandler},
		0x1A: {"kill", killHandler},
		0x42: {"varWrite", varWriteHandler(true)},
		0x43: {"varWrite", varWriteHandler(false)},
		0x46: {"array1DWrite", array1DWriteHandler(true)},
		0x47: {"array1DWrite", array1DWriteHandler(false)},
		0x4A: {"array2DWrite", array2DWriteHandler(true)},
		0x4B: {"array2DWrite", array2DWriteHandler(false)},
		0x4E: {"incVar", incVarHandler(true)},
		0x4F: {"incVar", incVarHandler(false)},
		0x52: {"incArray", incArrayHandler(true)},
		0x53: {"incArray", incArrayHandler(false)},
		0x56: {"decVar", decVarHandler(true)},
		0x57: {"decVar", decVarHandler(false)},
		0x5A: {"decArray", decArrayHandler(true)},
		0x5B: {"decArray", decArrayHandler(false)},
		0x5C: {"jumpIfTrue", condJumpHandler(false)},
		0x5D: {"jumpIfFalse", condJumpHandler(true)},
		0x73: {"jump", uncondJumpHandler},
		0xD6: {"bAnd", binaryOpHandler(expr.OpBAnd)},
		0xD7: {"bOr", binaryOpHandler(expr.OpBOr)},
	}
	withBinaryOps(t, 0x0E, 12)
	withNamed(t, v6v7NamedDescriptors)
	return t
}

func buildV6Table() Table {
	t := buildV6V7CoreTable()
	withNamed(t, v6OnlyNamedDescriptors)
	return t
}

func buildV7Table() Table {
	return buildV6V7CoreTable()
}

// buildV8Table builds v8's opcode core, per next_line_V8(): v8 has no
// byte-form id opcodes at all (every id is a dialect word) and no array
// increment/decrement opcodes.
func buildV8Table() Table {
	t := Table{
		0x01: {"pushWord", pushWordHandler},
		0x02: {"varRead", varReadHandler(false)},
		0x03: {"array1DRead", array1DReadHandler(false)},
		0x04: {"array2DRead", array2DReadHandler(false)},
		0x05: {"dup", dupHandler},
		0x06: {"kill", killHandler},
		0x07: {"isZero", isZeroHandler},
		0x64: {"jumpIfTrue", condJumpHandler(false)},
		0x65: {"jumpIfFalse", condJumpHandler(true)},
		0x66: {"jump", uncondJumpHandler},
		0x6D: {"varWrite", varWriteHandler(false)},
		0x6E: {"incVar", incVarHandler(false)},
		0x6F: {"decVar", decVarHandler(false)},
		0x71: {"array1DWrite", array1DWriteHandler(false)},
		0x75: {"array2DWrite", array2DWriteHandler(false)},
	}
	withBinaryOps(t, 0x08, 15)
	withNamed(t, v8NamedDescriptors)
	return t
}

// v6Table, v7Table and v8Table are built once at package init.
var (
	v6Table = buildV6Table()
	v7Table = buildV7Table()
	v8Table = buildV8Table()
)

// TableFor returns the dispatch table for d, per spec.md §4.8 ("v6/v7
// same opcode numbering, v8 renumbered").
func TableFor(d dialect.Dialect) Table {
	switch d {
	case dialect.V8:
		return v8Table
	case dialect.V7:
		return v7Table
	default:
		return v6Table
	}
}

// Dispatch reads one opcode byte and routes to its handler, running
// CloseBlocks afterwards (spec.md §4.6: run after every dispatched opcode).
// done reports the caller reached end of bytecode.
func Dispatch(s *State, t Table) (done bool, err error) {
	if s.Cur.Done() {
		return true, nil
	}
	s.LineStart = uint32(s.Cur.Offset())
	op, err := s.Cur.Byte()
	if err != nil {
		return false, err
	}
	s.OpcodeByte = op

	e, ok := t[op]
	if !ok {
		return false, &InvalidOpcodeError{Opcode: op, Offset: int(s.LineStart), Depth: s.St.Len()}
	}
	if err := e.handler(s, s.LineStart); err != nil {
		return false, err
	}
	CloseBlocks(s)
	return false, nil
}
