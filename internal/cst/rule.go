package cst

// Rule names a production of the grammar. Children layouts are documented per rule;
// "?" marks a position that holds a nil placeholder when the element is absent.
type Rule uint8

const (
	RuleInvalid Rule = iota

	RuleSource       // unit*
	RuleDeclarations // var_block* (fragment start)
	RuleStatements   // statement* (fragment start)

	RuleFunctionBlock  // modifiers? name extends? implements? var_blocks? statement_list?
	RuleProgram        // name var_blocks? statement_list?
	RuleFunction       // modifiers? name type_spec? var_blocks? statement_list?
	RuleMethod         // modifiers? name type_spec? var_blocks? statement_list?
	RuleProperty       // modifiers? name type_spec var_blocks? statement_list?
	RuleAction         // name statement_list?
	RuleInterface      // name extends? var_blocks?
	RuleDataTypeDecl   // type_decl+
	RuleGlobalVarList  // var_block+
	RuleModifiers      // keyword leaf+
	RuleExtends        // qualified_name+
	RuleImplements     // qualified_name+
	RuleStructTypeDecl // name extends? struct_body?
	RuleUnionTypeDecl  // name struct_body?
	RuleEnumTypeDecl   // name enum_values type_spec? expression?
	RuleAliasTypeDecl  // name type_spec initializer?
	RuleStructBody     // var_decl+
	RuleEnumValues     // enum_value+
	RuleEnumValue      // name expression?
	RuleVarBlocks      // var_block+
	RuleVarBlock       // kind-leaf qualifiers? var_decl*
	RuleQualifiers     // keyword leaf+
	RuleVarDecl        // names location? type_spec ctor_args? initializer?
	RuleNames          // ident leaf+
	RuleQualifiedName  // ident leaf+
	RuleSimpleType     // qualified_name
	RuleStringType     // keyword-leaf expression?
	RuleArrayType      // array_dims type_spec
	RuleArrayDims      // array_dim+
	RuleArrayDim       // expression expression | star-leaf
	RulePointerType    // keyword-leaf type_spec
	RuleSubrangeType   // qualified_name expression expression
	RuleEnumSpec       // enum_value+
	RuleArrayInit      // array_init_elem*
	RuleArrayInitElem  // initializer initializer?
	RuleStructInit     // field_init+
	RuleFieldInit      // name initializer
	RuleStatementList  // statement+
	RuleAssignment     // target op-leaf value
	RuleCallStatement  // call
	RuleIf             // cond statement_list? elsif_clauses? else_clause?
	RuleElsifClauses   // elsif_clause+
	RuleElsifClause    // cond statement_list?
	RuleElseClause     // statement_list?
	RuleCase           // selector case_elements? else_clause?
	RuleCaseElements   // case_element+
	RuleCaseElement    // case_labels statement_list?
	RuleCaseLabels     // (expression | case_range)+
	RuleCaseRange      // expression expression
	RuleFor            // control-leaf from to by? statement_list?
	RuleWhile          // cond statement_list?
	RuleRepeat         // statement_list? cond
	RuleReturn         // (none)
	RuleExit           // (none)
	RuleContinue       // (none)
	RuleJmp            // label-leaf
	RuleLabel          // label-leaf
	RuleEmpty          // (none)
	RuleBinary         // left op-leaf right
	RuleUnary          // op-leaf operand
	RuleParen          // expression
	RuleIntLiteral     // leaf
	RuleRealLiteral    // leaf
	RuleBoolLiteral    // leaf
	RuleStringLiteral  // leaf
	RuleTimeLiteral    // leaf
	RuleTypedLiteral   // type-leaf sign-leaf? value-leaf
	RuleEnumLiteral    // type-leaf value-leaf
	RuleDirectAddress  // leaf
	RuleIdentifier     // leaf
	RuleMember         // base name-leaf
	RuleIndex          // base expression+
	RuleDeref          // base
	RuleCall           // callee call_args?
	RuleCallArgs       // (expression | named_arg | output_arg)+
	RuleNamedArg       // name value
	RuleOutputArg      // not-leaf? name target

	ruleCount
)

var ruleNames = [ruleCount]string{
	RuleInvalid:        "invalid",
	RuleSource:         "iec_source",
	RuleDeclarations:   "var_declarations",
	RuleStatements:     "statement_list_root",
	RuleFunctionBlock:  "function_block_declaration",
	RuleProgram:        "program_declaration",
	RuleFunction:       "function_declaration",
	RuleMethod:         "method_declaration",
	RuleProperty:       "property_declaration",
	RuleAction:         "action_declaration",
	RuleInterface:      "interface_declaration",
	RuleDataTypeDecl:   "data_type_declaration",
	RuleGlobalVarList:  "global_var_declarations",
	RuleModifiers:      "modifiers",
	RuleExtends:        "extends",
	RuleImplements:     "implements",
	RuleStructTypeDecl: "structure_type_declaration",
	RuleUnionTypeDecl:  "union_type_declaration",
	RuleEnumTypeDecl:   "enumerated_type_declaration",
	RuleAliasTypeDecl:  "simple_type_declaration",
	RuleStructBody:     "structure_element_declarations",
	RuleEnumValues:     "enumerated_values",
	RuleEnumValue:      "enumerated_value",
	RuleVarBlocks:      "var_blocks",
	RuleVarBlock:       "var_block",
	RuleQualifiers:     "variable_qualifiers",
	RuleVarDecl:        "var_declaration",
	RuleNames:          "variable_names",
	RuleQualifiedName:  "qualified_name",
	RuleSimpleType:     "simple_spec",
	RuleStringType:     "string_type_specification",
	RuleArrayType:      "array_specification",
	RuleArrayDims:      "array_dimensions",
	RuleArrayDim:       "subrange",
	RulePointerType:    "pointer_type",
	RuleSubrangeType:   "subrange_specification",
	RuleEnumSpec:       "enumerated_specification",
	RuleArrayInit:      "array_initialization",
	RuleArrayInitElem:  "array_initial_element",
	RuleStructInit:     "structure_initialization",
	RuleFieldInit:      "structure_element_initialization",
	RuleStatementList:  "statement_list",
	RuleAssignment:     "assignment_statement",
	RuleCallStatement:  "function_call_statement",
	RuleIf:             "if_statement",
	RuleElsifClauses:   "else_if_clauses",
	RuleElsifClause:    "else_if_clause",
	RuleElseClause:     "else_clause",
	RuleCase:           "case_statement",
	RuleCaseElements:   "case_elements",
	RuleCaseElement:    "case_element",
	RuleCaseLabels:     "case_list",
	RuleCaseRange:      "case_subrange",
	RuleFor:            "for_statement",
	RuleWhile:          "while_statement",
	RuleRepeat:         "repeat_statement",
	RuleReturn:         "return_statement",
	RuleExit:           "exit_statement",
	RuleContinue:       "continue_statement",
	RuleJmp:            "jmp_statement",
	RuleLabel:          "labeled_statement",
	RuleEmpty:          "no_op_statement",
	RuleBinary:         "binary_expression",
	RuleUnary:          "unary_expression",
	RuleParen:          "parenthesized_expression",
	RuleIntLiteral:     "integer_literal",
	RuleRealLiteral:    "real_literal",
	RuleBoolLiteral:    "bool_literal",
	RuleStringLiteral:  "string_literal",
	RuleTimeLiteral:    "duration_or_date_literal",
	RuleTypedLiteral:   "typed_literal",
	RuleEnumLiteral:    "enumerated_literal",
	RuleDirectAddress:  "direct_variable",
	RuleIdentifier:     "symbolic_variable",
	RuleMember:         "field_selector",
	RuleIndex:          "subscript_list",
	RuleDeref:          "dereferenced",
	RuleCall:           "function_call",
	RuleCallArgs:       "param_assignments",
	RuleNamedArg:       "input_param_assignment",
	RuleOutputArg:      "output_parameter_assignment",
}

func (r Rule) String() string {
	if r < ruleCount {
		return ruleNames[r]
	}
	return "invalid"
}

// Rules returns every production, RuleInvalid excluded.
func Rules() []Rule {
	out := make([]Rule, 0, ruleCount-1)
	for r := RuleInvalid + 1; r < ruleCount; r++ {
		out = append(out, r)
	}
	return out
}
